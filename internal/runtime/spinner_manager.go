package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"pulse/internal/messages"
	"pulse/internal/spinner"
	"pulse/util"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/nats-io/nats.go/jetstream"
)

// SpinnersBucket holds each session's spinner config, keyed by session id.
const SpinnersBucket = "spinners"

// SpinnerManager consumes command.spinner.* subjects, applies the patch to
// the session's stored config and announces the result.
type SpinnerManager struct {
	js        jetstream.JetStream
	publisher *messages.Publisher
}

func NewSpinnerManager(js jetstream.JetStream) *SpinnerManager {
	return &SpinnerManager{
		js:        js,
		publisher: messages.NewPublisher(js),
	}
}

// Start registers a durable consumer on the COMMAND stream filtered to
// command.spinner.> subjects and handles messages until ctx is cancelled.
func (sm *SpinnerManager) Start(ctx context.Context) error {
	cons, err := sm.js.CreateOrUpdateConsumer(ctx, "COMMAND", jetstream.ConsumerConfig{
		Durable:        "SPINNER_CMD",
		FilterSubjects: []string{messages.SpinnerCommandsSubject},
		AckPolicy:      jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	cc, err := cons.Consume(func(m jetstream.Msg) {
		sm.handle(ctx, m)
	})
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	<-ctx.Done()
	cc.Stop()
	return nil
}

func (sm *SpinnerManager) handle(ctx context.Context, m jetstream.Msg) {
	if !util.SubjectMatches(messages.SpinnerConfigureSubjectPattern, m.Subject()) {
		slog.Warn("spinner command: unknown subject", "subj", m.Subject())
		_ = m.Term()
		return
	}
	var c messages.SpinnerConfigureCommand
	if err := json.Unmarshal(m.Data(), &c); err != nil {
		slog.Warn("spinner command: bad payload", "subj", m.Subject(), "err", err)
		_ = m.Term()
		return
	}
	if err := c.Validate(); err != nil {
		slog.Warn("spinner command: validation failed", "subj", m.Subject(), "err", err)
		_ = m.Term()
		return
	}

	cfg, err := sm.Configure(ctx, c)
	if err != nil {
		slog.Error("spinner command failed", "sid", c.SessionID, "err", err)
		_ = m.Nak()
		return
	}
	slog.Info("spinner configured", "sid", c.SessionID, "color", cfg.Color, "size", cfg.Size)
	_ = m.Ack()
}

// Configure applies c to the stored config, persists it and publishes a
// SpinnerConfiguredEvent.
func (sm *SpinnerManager) Configure(ctx context.Context, c messages.SpinnerConfigureCommand) (spinner.Config, error) {
	kv, err := sm.js.KeyValue(ctx, SpinnersBucket)
	if err != nil {
		return spinner.Config{}, fmt.Errorf("spinners bucket: %w", err)
	}
	current, err := LoadSpinnerConfig(ctx, kv, c.SessionID)
	if err != nil {
		return spinner.Config{}, err
	}
	next, err := ApplySpinnerPatch(current, c.Patch)
	if err != nil {
		return spinner.Config{}, err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return spinner.Config{}, fmt.Errorf("marshal config: %w", err)
	}
	if _, err := kv.Put(ctx, c.SessionID, raw); err != nil {
		return spinner.Config{}, fmt.Errorf("store config: %w", err)
	}
	if err := sm.publisher.PublishEvent(ctx, messages.NewSpinnerConfiguredEvent(c, next)); err != nil {
		return spinner.Config{}, err
	}
	return next, nil
}

// LoadSpinnerConfig reads a session's stored config. A missing key yields
// the zero Config, which renders with defaults.
func LoadSpinnerConfig(ctx context.Context, kv jetstream.KeyValue, sessionID string) (spinner.Config, error) {
	var cfg spinner.Config
	entry, err := kv.Get(ctx, sessionID)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := json.Unmarshal(entry.Value(), &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ApplySpinnerPatch merges an RFC 7386 patch over cfg.
func ApplySpinnerPatch(cfg spinner.Config, patch []byte) (spinner.Config, error) {
	current, err := json.Marshal(cfg)
	if err != nil {
		return cfg, fmt.Errorf("marshal config: %w", err)
	}
	patched, err := jsonpatch.MergePatch(current, patch)
	if err != nil {
		return cfg, fmt.Errorf("merge patch: %w", err)
	}
	var next spinner.Config
	if len(bytes.TrimSpace(patched)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(patched))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&next); err != nil {
			return cfg, fmt.Errorf("decode patched config: %w", err)
		}
	}
	return next, nil
}
