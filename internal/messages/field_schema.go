package messages

import (
	"reflect"
	"strings"
)

// FieldType represents the UI input type for a field
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeColor  FieldType = "color"
)

// FieldSchema describes how a field should be rendered in the UI
type FieldSchema struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	JSONName    string    `json:"json_name"` // actual field name in JSON
}

// GetFieldSchemas returns the form fields for a command type. Commands whose
// payload is not built from a form return nil.
func GetFieldSchemas(messageType string) []FieldSchema {
	var fields interface{}
	switch messageType {
	case "SpinnerConfigureCommand":
		fields = &SpinnerFields{}
	default:
		return nil
	}

	return extractFieldSchemas(fields)
}

// extractFieldSchemas uses reflection to build field schemas from struct tags
func extractFieldSchemas(v interface{}) []FieldSchema {
	var schemas []FieldSchema

	t := reflect.TypeOf(v).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		jsonName := strings.Split(jsonTag, ",")[0]

		schema := FieldSchema{
			Name:        field.Name,
			JSONName:    jsonName,
			Type:        FieldTypeString,
			Required:    field.Tag.Get("required") == "true",
			Placeholder: field.Tag.Get("placeholder"),
		}

		if field.Tag.Get("field_type") == "color" {
			schema.Type = FieldTypeColor
		}

		schemas = append(schemas, schema)
	}

	return schemas
}
