package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pulse/internal/platform"

	"github.com/nats-io/nats.go/jetstream"
)

func main() {
	appCfg := platform.LoadAppConfig()

	platform.InitMetrics()
	platform.InitLogger(appCfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- Run embedded NATS server ---
	nc, ns, natErrCh, err := platform.RunEmbeddedServer(ctx, *appCfg.NatsCfg)
	if err != nil {
		slog.Error("Failed to start embedded server", "err", err)
		os.Exit(1)
	}
	defer ns.Shutdown()
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		slog.Error("JetStream context error", "err", err)
		os.Exit(1)
	}
	if err := platform.SetupJetStream(ctx, js); err != nil {
		slog.Error("JetStream setup failed", "err", err)
		os.Exit(1)
	}

	var httpErrCh <-chan error
	if !appCfg.Flags.Headless {
		httpErrCh = platform.RunHTTPServer(ctx, js, *appCfg.HTTPSrvCfg)
	} else {
		// Create a dummy channel that never sends
		httpErrCh = make(chan error)
	}

	go func() {
		select {
		case err := <-natErrCh:
			slog.Error("Embedded server error", "err", err)
			cancel()
		case err := <-httpErrCh:
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	platform.Run(ctx, js, appCfg)
}
