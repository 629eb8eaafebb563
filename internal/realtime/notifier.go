package realtime

import "log"

// Publisher delivers one event to a transport.
type Publisher interface {
	Trigger(channel string, event string, payload any) error
}

// Notifier fans events out to every configured publisher. Events are invalidation hints; delivery
// is best effort and publish failures never reach the caller.
type Notifier struct {
	publishers []Publisher
}

func NewNotifier(publishers ...Publisher) *Notifier {
	active := make([]Publisher, 0, len(publishers))
	for _, publisher := range publishers {
		if publisher != nil {
			active = append(active, publisher)
		}
	}
	return &Notifier{publishers: active}
}

func (notifier *Notifier) Publish(channel string, event string, payload any) {
	if notifier == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	for _, publisher := range notifier.publishers {
		if err := publisher.Trigger(channel, event, payload); err != nil {
			log.Printf("realtime publish %s on %s failed: %v", event, channel, err)
		}
	}
}
