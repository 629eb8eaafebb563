package services

// EventPublisher receives change hints after a mutation has been committed.
type EventPublisher interface {
	Publish(channel string, event string, payload any)
}

func publish(events EventPublisher, channel string, event string, payload any) {
	if events == nil {
		return
	}
	events.Publish(channel, event, payload)
}
