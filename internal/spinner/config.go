// Package spinner renders the <loading-spinner> element: two concentric
// rings spinning in opposite directions, drawn as SVG inside a declarative
// shadow root so page styles and spinner styles never meet.
package spinner

// TagName is the custom element name the spinner renders under.
const TagName = "loading-spinner"

// Observed attribute names.
const (
	AttrColor = "color"
	AttrSize  = "size"
)

// Defaults applied when an attribute is unset.
const (
	DefaultColor = "#f97316"
	DefaultSize  = "50"
)

// Config is the spinner's configuration. Values are passed to the markup
// uninterpreted; an empty field falls back to its default.
type Config struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// Resolved returns c with defaults filled in.
func (c Config) Resolved() Config {
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Size == "" {
		c.Size = DefaultSize
	}
	return c
}

// Attr returns the raw value of an observed attribute.
func (c Config) Attr(name string) (string, bool) {
	switch name {
	case AttrColor:
		return c.Color, true
	case AttrSize:
		return c.Size, true
	default:
		return "", false
	}
}

// With returns c with one observed attribute replaced. Unobserved names
// leave c unchanged.
func (c Config) With(name, value string) Config {
	switch name {
	case AttrColor:
		c.Color = value
	case AttrSize:
		c.Size = value
	}
	return c
}
