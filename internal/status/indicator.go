package status

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// Element ids used by the badge markup.
const (
	WrapperID = "ws-status-indicator"
	CircleID  = "ws-status-circle"
	PingID    = "ws-status-ping"
)

// Indicator recolours a dot and its halo from lifecycle statuses.
type Indicator struct {
	mu     sync.Mutex
	circle *Node
	ping   *Node
}

// NewIndicator binds an indicator to explicit node references. Either node
// may be nil, in which case Update does nothing.
func NewIndicator(circle, ping *Node) *Indicator {
	return &Indicator{circle: circle, ping: ping}
}

// NewBadgeNodes builds the default dot and halo nodes, starting red.
func NewBadgeNodes() (circle, ping *Node) {
	circle = NewNode(CircleID, "rounded-full", "relative", "inline-flex", "h-3", "w-3", ClassRed)
	ping = NewNode(PingID, "animate-ping", "absolute", "inline-flex", "h-full", "w-full", "rounded-full", ClassRed, "opacity-75")
	return circle, ping
}

// Update clears every colour class from both nodes and applies the one for s.
func (i *Indicator) Update(s Status) {
	if i == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.circle == nil || i.ping == nil {
		return
	}

	i.circle.RemoveClass(ColourClasses...)
	i.ping.RemoveClass(ColourClasses...)

	// unknown statuses leave both nodes colourless
	if c := ColourClass(s); c != "" {
		i.circle.AddClass(c)
		i.ping.AddClass(c)
	}
}

// Notify applies the status derived from a notification name.
func (i *Indicator) Notify(n Notification) {
	i.Update(StatusFor(n))
}

// Attach registers the indicator against src.
func (i *Indicator) Attach(src Source) (detach func()) {
	return src.Subscribe(i.Update)
}

// Badge renders the indicator's current state.
func (i *Indicator) Badge() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		i.mu.Lock()
		var circleCls, pingCls string
		if i.circle != nil {
			circleCls = i.circle.ClassAttr()
		}
		if i.ping != nil {
			pingCls = i.ping.ClassAttr()
		}
		i.mu.Unlock()

		_, err := io.WriteString(w, badgeHTML(circleCls, pingCls))
		return err
	})
}

func badgeHTML(circleCls, pingCls string) string {
	return `<div id="` + WrapperID + `" class="fixed top-4 right-4 h-3 w-3">` +
		`<div id="` + PingID + `" class="` + templ.EscapeString(pingCls) + `"></div>` +
		`<div id="` + CircleID + `" class="` + templ.EscapeString(circleCls) + `"></div>` +
		`</div>`
}
