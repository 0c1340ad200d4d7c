package platform

import (
	"context"
	"log/slog"
	"net/http"

	"pulse/internal/runtime"
	"pulse/internal/spinner"
	"pulse/internal/status"
	components "pulse/ui/components"

	"github.com/nats-io/nats.go/jetstream"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// UIStream is the SSE handler for /ui. Each stream owns a View: the badge
// follows link events and the spinner follows the session's config events.
func UIStream(js jetstream.JetStream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := SessionID(r)
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		kv, err := js.KeyValue(ctx, runtime.SpinnersBucket)
		if err != nil {
			slog.Error("UIStream: spinners bucket unavailable", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		cfg, err := runtime.LoadSpinnerConfig(ctx, kv, sid)
		if err != nil {
			slog.Error("UIStream: failed to load spinner config", "sid", sid, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		view := runtime.NewView(sid, cfg, spinner.WithRenderHook(func(spinner.Config) {
			SpinnerRenders.Inc()
		}))
		subs := view.Subjects()
		renderers := runtime.ForSubjects(subs, view)

		// Latest message per subject is enough to rebuild the current state.
		cons, err := js.OrderedConsumer(ctx, "EVENT", jetstream.OrderedConsumerConfig{
			FilterSubjects: subs,
			DeliverPolicy:  jetstream.DeliverLastPerSubjectPolicy,
		})
		if err != nil {
			slog.Error("UIStream: failed to create consumer", "sid", sid, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		sse := datastar.NewSSE(w, r)
		UIStreamsActive.Inc()
		defer UIStreamsActive.Dec()

		if err := sse.MergeFragmentTempl(view.Indicator.Badge(), datastar.WithSelectorID(status.WrapperID)); err != nil {
			slog.Warn("UIStream: initial badge", "sid", sid, "err", err)
			return
		}
		if err := sse.MergeFragmentTempl(components.SpinnerSlot(view.Spinner), datastar.WithSelectorID(components.SpinnerSlotID)); err != nil {
			slog.Warn("UIStream: initial spinner", "sid", sid, "err", err)
			return
		}

		cc, err := cons.Consume(func(msg jetstream.Msg) {
			if err := runtime.Dispatch(ctx, renderers, msg, sse); err != nil {
				slog.Warn("render", "subj", msg.Subject(), "err", err)
			}
		})
		if err != nil {
			slog.Warn("UIStream: consume failed", "sid", sid, "err", err)
			return
		}
		defer cc.Stop()

		<-ctx.Done() // Wait for disconnect
	}
}
