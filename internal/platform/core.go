package platform

import (
	"context"
	"log/slog"

	"pulse/internal/link"
	"pulse/internal/messages"
	"pulse/internal/runtime"
	"pulse/internal/status"

	"github.com/nats-io/nats.go/jetstream"
)

// Run starts the background workers and blocks until ctx is done.
func Run(ctx context.Context, js jetstream.JetStream, cfg *AppConfig) {
	// --- Activate SpinnerManager ---
	sm := runtime.NewSpinnerManager(js)
	go func() {
		if err := sm.Start(ctx); err != nil {
			slog.Error("SpinnerManager error", "err", err)
		}
	}()

	// --- Activate link ---
	if !cfg.Flags.NoLink {
		go RunLink(ctx, js, *cfg.LinkCfg)
	}

	slog.Info("🚀 pulse is up")
	<-ctx.Done()
	slog.Info("Run: shutdown requested")
}

// RunLink dials the configured websocket once and publishes its lifecycle.
func RunLink(ctx context.Context, js jetstream.JetStream, cfg link.Config) {
	if err := cfg.Validate(); err != nil {
		slog.Error("link config invalid", "err", err)
		return
	}
	l := link.New(cfg)

	// the closing notification is published after ctx is cancelled
	bridgeCtx := context.WithoutCancel(ctx)
	detachBridge := runtime.NewLinkBridge(cfg.Name, messages.NewPublisher(js)).Attach(bridgeCtx, l)
	defer detachBridge()
	detachMetrics := l.Subscribe(func(s status.Status) {
		LinkTransitions.WithLabelValues(cfg.Name, s.String()).Inc()
	})
	defer detachMetrics()

	if err := l.Run(ctx); err != nil {
		slog.Warn("link ended", "link", cfg.Name, "err", err)
	}
}
