// Package status reflects a websocket's lifecycle into a two-element badge:
// a filled dot and a pulsing halo that share one colour class.
package status

// Status is the connection state carried by a lifecycle notification.
type Status string

const (
	Connecting Status = "connecting"
	Open       Status = "open"
	Closed     Status = "closed"
)

// Notification is the name of a lifecycle notification emitted by a
// connection manager.
type Notification string

const (
	NotifyConnecting Notification = "connecting"
	NotifyOpened     Notification = "opened"
	NotifyClosed     Notification = "closed"
)

// Notifications lists every lifecycle notification in delivery order of a
// normal connection.
var Notifications = []Notification{NotifyConnecting, NotifyOpened, NotifyClosed}

var statusByNotification = map[Notification]Status{
	NotifyConnecting: Connecting,
	NotifyOpened:     Open,
	NotifyClosed:     Closed,
}

// StatusFor maps a notification to its status tag. Unknown names map to the
// empty Status, which colours nothing.
func StatusFor(n Notification) Status {
	return statusByNotification[n]
}

// Notification returns the notification name that produces s.
func (s Status) Notification() Notification {
	for n, st := range statusByNotification {
		if st == s {
			return n
		}
	}
	return ""
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// Colour classes applied to the badge nodes.
const (
	ClassAmber = "bg-orange-500"
	ClassGreen = "bg-green-500"
	ClassRed   = "bg-red-500"
)

// ColourClasses are all classes an Update may clear.
var ColourClasses = []string{ClassGreen, ClassAmber, ClassRed}

// ColourClass returns the class for s, or "" when s is not recognised.
func ColourClass(s Status) string {
	switch s {
	case Connecting:
		return ClassAmber
	case Open:
		return ClassGreen
	case Closed:
		return ClassRed
	default:
		return ""
	}
}
