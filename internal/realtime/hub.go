package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSubscriberBuffer = 16

type Event struct {
	ID      string    `json:"id"`
	Channel string    `json:"channel"`
	Name    string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sentAt"`
}

// Hub is the in-process transport used by the server-sent events stream.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]chan Event
	buffer      int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[string]chan Event),
		buffer:      defaultSubscriberBuffer,
	}
}

// Subscribe registers a listener on channel. The returned cancel func must be called once the
// listener goes away; it closes the event channel.
func (hub *Hub) Subscribe(channel string) (<-chan Event, func()) {
	events := make(chan Event, hub.buffer)
	subscriberID := uuid.NewString()

	hub.mu.Lock()
	listeners, ok := hub.subscribers[channel]
	if !ok {
		listeners = make(map[string]chan Event)
		hub.subscribers[channel] = listeners
	}
	listeners[subscriberID] = events
	hub.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			hub.mu.Lock()
			defer hub.mu.Unlock()
			if listeners, ok := hub.subscribers[channel]; ok {
				delete(listeners, subscriberID)
				if len(listeners) == 0 {
					delete(hub.subscribers, channel)
				}
			}
			close(events)
		})
	}
	return events, cancel
}

// Trigger never blocks: a subscriber whose buffer is full misses the event and is expected to
// re-read on its next signal.
func (hub *Hub) Trigger(channel string, event string, payload any) error {
	message := Event{
		ID:      uuid.NewString(),
		Channel: channel,
		Name:    event,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for _, listener := range hub.subscribers[channel] {
		select {
		case listener <- message:
		default:
		}
	}
	return nil
}

func (hub *Hub) SubscriberCount(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscribers[channel])
}
