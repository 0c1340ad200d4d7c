package runtime

import (
	"context"
	"log/slog"

	"pulse/internal/messages"
	"pulse/internal/status"
)

// EventPublisher is satisfied by *messages.Publisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, evt messages.Event) error
}

// LinkBridge republishes a status source's changes as LinkStatusEvents.
type LinkBridge struct {
	name      string
	publisher EventPublisher
}

func NewLinkBridge(name string, publisher EventPublisher) *LinkBridge {
	return &LinkBridge{name: name, publisher: publisher}
}

// Attach subscribes to src until the returned function is called.
func (b *LinkBridge) Attach(ctx context.Context, src status.Source) (detach func()) {
	return src.Subscribe(func(s status.Status) {
		n := s.Notification()
		if n == "" {
			slog.Warn("link bridge: status without notification", "link", b.name, "status", s)
			return
		}
		if err := b.publisher.PublishEvent(ctx, messages.NewLinkStatusEvent(b.name, n)); err != nil {
			slog.Warn("link bridge: publish failed", "link", b.name, "status", s, "err", err)
		}
	})
}
