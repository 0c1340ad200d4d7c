package components

import (
	"context"
	"fmt"
	"io"

	"pulse/internal/messages"

	"github.com/a-h/templ"
)

// CommandForm renders a form whose inputs come from the command's field
// schemas. Submitting posts the form to /command/<messageType>.
func CommandForm(messageType string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		action := "/command/" + messageType
		if _, err := fmt.Fprintf(w,
			`<form class="flex gap-2 items-end" data-on-submit="@post('%s', {contentType: 'form'})">`+
				`<input type="hidden" name="_messageType" value="%s">`,
			templ.EscapeString(action), templ.EscapeString(messageType)); err != nil {
			return err
		}
		for _, f := range messages.GetFieldSchemas(messageType) {
			inputType := "text"
			if f.Type == messages.FieldTypeColor {
				inputType = "color"
			}
			if _, err := fmt.Fprintf(w,
				`<label class="flex flex-col text-xs text-gray-300">%s<input class="text-black rounded px-1" type="%s" name="%s" placeholder="%s"%s></label>`,
				templ.EscapeString(f.Name), inputType, templ.EscapeString(f.JSONName),
				templ.EscapeString(f.Placeholder), valueAttr(f)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button class="rounded bg-orange-500 px-3 py-1 text-white" type="submit">Apply</button></form>`)
		return err
	})
}

// colour inputs cannot be blank, so they start at the placeholder
func valueAttr(f messages.FieldSchema) string {
	if f.Type == messages.FieldTypeColor && f.Placeholder != "" {
		return ` value="` + templ.EscapeString(f.Placeholder) + `"`
	}
	return ""
}
