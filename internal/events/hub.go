package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/observability/metrics"
)

// Event types published after successful mutations
const (
	EmployeeCreated = "employee.created"
	TaskCreated     = "task.created"
	TaskUpdated     = "task.updated"
	TaskDeleted     = "task.deleted"
)

// Event notifies subscribers that an entity changed. It carries no entity
// data; clients re-run the list query to refresh their view.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

// Hub fans events out to subscribers without blocking publishers
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	logger *slog.Logger
}

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{subs: map[chan Event]struct{}{}, logger: logger}
}

// Subscribe registers a subscriber with the given buffer size. The returned
// func unsubscribes and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	metrics.SetSubscribers(n)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			n := len(h.subs)
			close(ch)
			h.mu.Unlock()
			metrics.SetSubscribers(n)
		})
	}
}

// Publish delivers e to every subscriber with room in its buffer; full
// subscribers miss the event.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
			metrics.ObserveDroppedEvent()
			h.logger.Debug("dropped event for slow subscriber", slog.String("type", e.Type), slog.String("id", e.ID))
		}
	}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
