package server

import (
	"github.com/sasha-s/go-deadlock"
)

// Hub fans computed snapshots out to websocket subscribers.
type Hub struct {
	mu          deadlock.RWMutex
	subscribers map[string]chan Update
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan Update),
	}
}

// Register creates the outbound channel for a client. An existing
// channel under the same id is closed first.
func (h *Hub) Register(id string) chan Update {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan Update, 16)
	h.subscribers[id] = ch
	return ch
}

// Unregister removes a subscriber and closes its channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Broadcast sends an update to every subscriber. Slow consumers are
// skipped rather than blocking the sender.
func (h *Hub) Broadcast(msg Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
