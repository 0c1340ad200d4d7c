package spinner

import (
	"context"
	"io"
	"sync"
)

// Spinner is a stateful <loading-spinner> instance. It renders once when
// attached and once more for every configuration change after that.
type Spinner struct {
	mu       sync.Mutex
	cfg      Config
	attached bool
	markup   string
	renders  int
	onRender func(Config)
}

// Option configures a Spinner.
type Option func(*Spinner)

// WithRenderHook calls fn after every render with the resolved config.
func WithRenderHook(fn func(Config)) Option {
	return func(s *Spinner) { s.onRender = fn }
}

// New returns an unattached spinner holding cfg.
func New(cfg Config, opts ...Option) *Spinner {
	s := &Spinner{cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Attach performs the first render. Later calls are no-ops.
func (s *Spinner) Attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return
	}
	s.attached = true
	s.render()
}

// SetAttribute changes one observed attribute. It reports whether the
// spinner re-rendered, which happens only once attached and only when the
// value differs from the current one.
func (s *Spinner) SetAttribute(name, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.cfg.Attr(name)
	if !ok {
		return false
	}
	s.cfg = s.cfg.With(name, value)
	if old == value || !s.attached {
		return false
	}
	s.render()
	return true
}

// Update replaces the whole configuration and re-renders at most once.
func (s *Spinner) Update(cfg Config) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg == s.cfg {
		return false
	}
	s.cfg = cfg
	if !s.attached {
		return false
	}
	s.render()
	return true
}

// Config returns the raw configuration.
func (s *Spinner) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// HTML returns the last rendered markup, or "" before Attach.
func (s *Spinner) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markup
}

// Renders returns how many times the spinner has rendered.
func (s *Spinner) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// Render implements templ.Component, attaching the spinner if needed.
func (s *Spinner) Render(_ context.Context, w io.Writer) error {
	s.Attach()
	_, err := io.WriteString(w, s.HTML())
	return err
}

func (s *Spinner) render() {
	s.markup = HTML(s.cfg)
	s.renders++
	if s.onRender != nil {
		s.onRender(s.cfg.Resolved())
	}
}
