package messages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pulse/internal/spinner"
	"pulse/internal/status"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/xid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// =============================================================================
// CONSTRUCTORS - Easy message creation
// =============================================================================

// NewLinkStatusEvent creates a link status event for a notification
func NewLinkStatusEvent(link string, n status.Notification) *LinkStatusEvent {
	return &LinkStatusEvent{
		ID:           xid.New().String(),
		Link:         link,
		Notification: n,
		Status:       status.StatusFor(n),
		OccurredAt:   time.Now(),
	}
}

// NewSpinnerConfigureCommand creates a spinner configure command from a raw merge patch
func NewSpinnerConfigureCommand(sessionID string, patch json.RawMessage) *SpinnerConfigureCommand {
	return &SpinnerConfigureCommand{SessionID: sessionID, Patch: patch}
}

// WithCorrelation adds correlation ID to spinner configure command
func (c *SpinnerConfigureCommand) WithCorrelation(id string) *SpinnerConfigureCommand {
	c.CorrelationID = id
	return c
}

// NewSpinnerConfiguredEvent creates a spinner configured event
func NewSpinnerConfiguredEvent(cmd SpinnerConfigureCommand, cfg spinner.Config) *SpinnerConfiguredEvent {
	return &SpinnerConfiguredEvent{
		SessionID:     cmd.SessionID,
		Config:        cfg,
		ConfiguredAt:  time.Now(),
		CorrelationID: cmd.CorrelationID,
	}
}

// =============================================================================
// VALIDATION - Implementation of Validate() methods
// =============================================================================

var tokenRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// spinnerPatchSchema constrains what a configure patch may touch.
const spinnerPatchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "color": {"type": ["string", "null"], "maxLength": 64},
    "size":  {"type": ["string", "null"], "maxLength": 16}
  },
  "additionalProperties": false
}`

var compiledSpinnerPatchSchema = jsonschema.MustCompileString("spinner-patch.schema.json", spinnerPatchSchema)

// validateLinkStatusEvent implements validation for LinkStatusEvent
func validateLinkStatusEvent(e LinkStatusEvent) error {
	if !tokenRegex.MatchString(e.Link) {
		return fmt.Errorf("link must contain only alphanumeric characters, hyphens, and underscores")
	}
	if status.StatusFor(e.Notification) == "" {
		return fmt.Errorf("unknown notification %q", e.Notification)
	}
	return nil
}

// validateSpinnerConfigureCommand implements validation for SpinnerConfigureCommand
func validateSpinnerConfigureCommand(c SpinnerConfigureCommand) error {
	if c.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if !tokenRegex.MatchString(c.SessionID) {
		return fmt.Errorf("session_id must be a single subject token")
	}
	if len(bytes.TrimSpace(c.Patch)) == 0 {
		return fmt.Errorf("patch is required")
	}
	var v any
	if err := json.Unmarshal(c.Patch, &v); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	if err := compiledSpinnerPatchSchema.Validate(v); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	return nil
}

// =============================================================================
// PUBLISHER - Type-safe message publishing
// =============================================================================

// Publisher provides type-safe message publishing
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates a new type-safe publisher
func NewPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

// PublishCommand publishes a command with validation
func (p *Publisher) PublishCommand(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("command validation failed: %w", err)
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	_, err = p.js.Publish(ctx, cmd.Subject(), data)
	if err != nil {
		return fmt.Errorf("publish command: %w", err)
	}

	return nil
}

// PublishEvent publishes an event with validation
func (p *Publisher) PublishEvent(ctx context.Context, evt Event) error {
	if err := evt.Validate(); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = p.js.Publish(ctx, evt.Subject(), data)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

// =============================================================================
// UTILITIES - Helper functions for common operations
// =============================================================================

// BuildCommand creates a typed command from UI form data
func BuildCommand(messageType string, data map[string]any) (Command, error) {
	switch messageType {
	case "SpinnerConfigureCommand":
		sessionID, _ := data["session_id"].(string)
		patch := map[string]any{}
		for _, f := range GetFieldSchemas(messageType) {
			v, ok := data[f.JSONName]
			if !ok {
				continue
			}
			// blank form inputs reset the field to its default
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				patch[f.JSONName] = nil
				continue
			}
			patch[f.JSONName] = v
		}
		raw, err := json.Marshal(patch)
		if err != nil {
			return nil, fmt.Errorf("marshal patch: %w", err)
		}
		cmd := NewSpinnerConfigureCommand(sessionID, raw)
		if corrID, ok := data["correlation_id"].(string); ok && corrID != "" {
			cmd = cmd.WithCorrelation(corrID)
		}
		return cmd, nil

	default:
		return nil, fmt.Errorf("unknown command type: %s", messageType)
	}
}

// GetCommandTypes returns all available command message types
func GetCommandTypes() []string {
	return []string{
		"SpinnerConfigureCommand",
	}
}
