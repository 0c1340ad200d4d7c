package messages

import (
	"encoding/json"
	"fmt"
	"time"

	"pulse/internal/spinner"
	"pulse/internal/status"
)

// =============================================================================
// CORE INTERFACES
// =============================================================================

// Message represents any message in the system
type Message interface {
	Subject() string
	Validate() error
}

// Command represents an input that requests something to happen
type Command interface {
	Message
	IsCommand()
}

// Event represents something that has happened
type Event interface {
	Message
	IsEvent()
	Timestamp() time.Time
}

// =============================================================================
// SUBJECT CONSTANTS - Single source of truth for all subjects
// =============================================================================

const (
	// Link domain - Events
	LinkStatusSubjectPattern = "event.link.*.*" // link name, notification

	// Spinner domain - Commands
	SpinnerConfigureSubjectPattern = "command.spinner.*.configure" // * = session id
	SpinnerCommandsSubject         = "command.spinner.>"

	// Spinner domain - Events
	SpinnerConfiguredSubjectPattern = "event.spinner.*.configured" // * = session id
)

// =============================================================================
// LINK DOMAIN - EVENTS
// =============================================================================

// LinkStatusEvent reports one lifecycle notification of a websocket link.
type LinkStatusEvent struct {
	ID           string              `json:"id"`
	Link         string              `json:"link"`
	Notification status.Notification `json:"notification"`
	Status       status.Status       `json:"status"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

func (e LinkStatusEvent) Subject() string {
	return LinkStatusSubject(e.Link, e.Notification)
}
func (e LinkStatusEvent) IsEvent()             {}
func (e LinkStatusEvent) Timestamp() time.Time { return e.OccurredAt }
func (e LinkStatusEvent) Validate() error {
	return validateLinkStatusEvent(e)
}

// =============================================================================
// SPINNER DOMAIN - COMMANDS
// =============================================================================

// SpinnerConfigureCommand changes a session's spinner with an RFC 7386 merge
// patch over its current config. A null field restores the default.
type SpinnerConfigureCommand struct {
	SessionID     string          `json:"session_id"`
	Patch         json.RawMessage `json:"patch"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

func (c SpinnerConfigureCommand) Subject() string {
	return SpinnerConfigureSubject(c.SessionID)
}
func (c SpinnerConfigureCommand) IsCommand() {}
func (c SpinnerConfigureCommand) Validate() error {
	return validateSpinnerConfigureCommand(c)
}

// SpinnerFields are the form inputs that make up a spinner configure patch.
type SpinnerFields struct {
	Color string `json:"color" placeholder:"#f97316" field_type:"color"`
	Size  string `json:"size" placeholder:"50"`
}

// =============================================================================
// SPINNER DOMAIN - EVENTS
// =============================================================================

// SpinnerConfiguredEvent carries the stored config after a patch was applied.
type SpinnerConfiguredEvent struct {
	SessionID     string         `json:"session_id"`
	Config        spinner.Config `json:"config"`
	ConfiguredAt  time.Time      `json:"configured_at"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}

func (e SpinnerConfiguredEvent) Subject() string {
	return SpinnerConfiguredSubject(e.SessionID)
}
func (e SpinnerConfiguredEvent) IsEvent()             {}
func (e SpinnerConfiguredEvent) Timestamp() time.Time { return e.ConfiguredAt }
func (e SpinnerConfiguredEvent) Validate() error {
	if !tokenRegex.MatchString(e.SessionID) {
		return fmt.Errorf("session_id must be a single subject token")
	}
	return nil
}

// =============================================================================
// SUBJECT BUILDERS
// =============================================================================

func LinkStatusSubject(link string, n status.Notification) string {
	return fmt.Sprintf("event.link.%s.%s", link, n)
}

func SpinnerConfigureSubject(sessionID string) string {
	return fmt.Sprintf("command.spinner.%s.configure", sessionID)
}

func SpinnerConfiguredSubject(sessionID string) string {
	return fmt.Sprintf("event.spinner.%s.configured", sessionID)
}
