package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, Connecting, StatusFor(NotifyConnecting))
	assert.Equal(t, Open, StatusFor(NotifyOpened))
	assert.Equal(t, Closed, StatusFor(NotifyClosed))
	assert.Equal(t, Status(""), StatusFor("bogus"))

	for _, n := range Notifications {
		assert.Equal(t, n, StatusFor(n).Notification())
	}
	assert.Equal(t, "unknown", Status("").String())
}

func TestHub_DeliveryOrder(t *testing.T) {
	hub := NewHub()
	var got []string
	hub.Subscribe(func(s Status) { got = append(got, "a:"+string(s)) })
	hub.Subscribe(func(s Status) { got = append(got, "b:"+string(s)) })

	hub.Dispatch(NotifyConnecting)
	hub.Dispatch(NotifyOpened)

	assert.Equal(t, []string{"a:connecting", "b:connecting", "a:open", "b:open"}, got)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	var calls int
	unsub := hub.Subscribe(func(Status) { calls++ })
	other := hub.Subscribe(func(Status) {})
	assert.Equal(t, 2, hub.Len())

	hub.Publish(Open)
	unsub()
	unsub()
	hub.Publish(Closed)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, hub.Len())
	other()
	assert.Equal(t, 0, hub.Len())
}

func TestNode_Classes(t *testing.T) {
	n := NewNode("x", "a", "b", "a", "")
	assert.Equal(t, []string{"a", "b"}, n.Classes())

	n.RemoveClass("a", "missing")
	n.AddClass("c")
	assert.Equal(t, "b c", n.ClassAttr())
	assert.False(t, n.HasClass("a"))
}
