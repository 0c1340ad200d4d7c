package runtime

import (
	"pulse/internal/messages"
	"pulse/internal/spinner"
	"pulse/internal/status"
)

// View is the per-stream component state renderers mutate.
type View struct {
	SessionID string
	Indicator *status.Indicator
	Spinner   *spinner.Spinner
}

// NewView builds a fresh badge and an attached spinner for one UI stream.
func NewView(sessionID string, cfg spinner.Config, opts ...spinner.Option) *View {
	circle, ping := status.NewBadgeNodes()
	sp := spinner.New(cfg, opts...)
	sp.Attach()
	return &View{
		SessionID: sessionID,
		Indicator: status.NewIndicator(circle, ping),
		Spinner:   sp,
	}
}

// Subjects lists the EVENT stream subjects a view consumes.
func (v *View) Subjects() []string {
	return []string{
		messages.LinkStatusSubjectPattern,
		messages.SpinnerConfiguredSubject(v.SessionID),
	}
}
