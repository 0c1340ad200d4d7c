package runtime

import (
	"context"

	"pulse/internal/messages"
	"pulse/internal/status"
	components "pulse/ui/components"

	datastar "github.com/starfederation/datastar/sdk/go"
)

// ─────────────────── LINK EVENTS ───────────────────

func renderLinkStatus(v *View) func(context.Context, Msg, SSE, messages.LinkStatusEvent) error {
	return func(ctx context.Context, msg Msg, sse SSE, evt messages.LinkStatusEvent) error {
		v.Indicator.Notify(evt.Notification)
		return sse.MergeFragmentTempl(
			v.Indicator.Badge(),
			datastar.WithSelectorID(status.WrapperID),
		)
	}
}

// ─────────────────── SPINNER EVENTS ─────────────────

func renderSpinnerConfigured(v *View) func(context.Context, Msg, SSE, messages.SpinnerConfiguredEvent) error {
	return func(ctx context.Context, msg Msg, sse SSE, evt messages.SpinnerConfiguredEvent) error {
		// replayed or duplicate configs leave the spinner alone
		if !v.Spinner.Update(evt.Config) {
			return nil
		}
		return sse.MergeFragmentTempl(
			components.SpinnerSlot(v.Spinner),
			datastar.WithSelectorID(components.SpinnerSlotID),
		)
	}
}

// ─────────────────── REGISTRY ──────────────────────────

func init() {
	Specs = []RendererSpec{
		{Pattern: messages.LinkStatusSubjectPattern, Build: func(subj string, v *View) Renderer {
			return newTypedRenderer(subj, renderLinkStatus(v))
		}},
		{Pattern: messages.SpinnerConfiguredSubjectPattern, Build: func(subj string, v *View) Renderer {
			return newTypedRenderer(subj, renderSpinnerConfigured(v))
		}},
	}
}
