// Package messages provides a centralized schema for all NATS messaging contracts.
//
// This package consolidates all message types, subject patterns, and validation logic
// into a single source of truth, providing:
//
//   - Type-safe message construction
//   - Centralized subject constants to eliminate hardcoded strings
//   - Validation methods to ensure message integrity
//   - Type-safe publisher for command and event publishing
//
// # Message Types
//
//   - Commands: Input messages that request something to happen (e.g., SpinnerConfigureCommand)
//   - Events: Output messages that indicate something has happened (e.g., LinkStatusEvent)
//
// # Subject Patterns
//
// All NATS subject patterns are defined as constants, with both pattern forms
// (for consumers) and builder functions (for publishers):
//
//   - Pattern constants: Used for consumer subscriptions (e.g., "event.link.*.*")
//   - Builder functions: Generate concrete subjects (e.g., LinkStatusSubject("upstream", "opened") → "event.link.upstream.opened")
//
// # Usage Example
//
//	evt := messages.NewLinkStatusEvent("upstream", status.NotifyOpened)
//
//	publisher := messages.NewPublisher(js)
//	if err := publisher.PublishEvent(ctx, evt); err != nil {
//	    log.Fatal(err)
//	}
//
// # Domain Organization
//
//   - Link domain: websocket lifecycle notifications feeding the status badge
//   - Spinner domain: per-session spinner configuration
package messages
