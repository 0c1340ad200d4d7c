package status

import "sync"

// Source is anything that reports connection lifecycle changes.
type Source interface {
	// Subscribe registers fn for every status change and returns a function
	// that removes the registration.
	Subscribe(fn func(Status)) (unsubscribe func())
}

// Hub is an in-process Source. Delivery is synchronous and follows
// registration order; Hub keeps no memory of previous statuses.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   []hubSub
}

type hubSub struct {
	id int
	fn func(Status)
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe implements Source.
func (h *Hub) Subscribe(fn func(Status)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, hubSub{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers s to every subscriber.
func (h *Hub) Publish(s Status) {
	h.mu.RLock()
	subs := make([]hubSub, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}

// Dispatch publishes the status derived from a notification name.
func (h *Hub) Dispatch(n Notification) {
	h.Publish(StatusFor(n))
}

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
