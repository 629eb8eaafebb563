package realtime

import (
	"errors"
	"testing"
	"time"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (publisher *recordingPublisher) Trigger(channel string, event string, payload any) error {
	publisher.events = append(publisher.events, Event{Channel: channel, Name: event, Payload: payload})
	return publisher.err
}

func TestNotifierFansOutAndSwallowsErrors(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("transport down")}
	healthy := &recordingPublisher{}
	notifier := NewNotifier(failing, nil, healthy)

	notifier.Publish("company:1:lists", EventTaskListsRefresh, nil)

	if len(failing.events) != 1 || len(healthy.events) != 1 {
		t.Fatalf("expected both publishers to receive the event, got %d and %d", len(failing.events), len(healthy.events))
	}
	if _, ok := healthy.events[0].Payload.(map[string]any); !ok {
		t.Fatalf("expected nil payload to be replaced by an empty object, got %#v", healthy.events[0].Payload)
	}
}

func TestNilNotifierIsNoop(t *testing.T) {
	var notifier *Notifier
	notifier.Publish("company:1:lists", EventTaskListsRefresh, nil)
}

func TestHubDeliversToChannelSubscribersOnly(t *testing.T) {
	hub := NewHub()
	dayEvents, cancelDay := hub.Subscribe("company:1:day:2024-01-10")
	defer cancelDay()
	otherEvents, cancelOther := hub.Subscribe("company:2:day:2024-01-10")
	defer cancelOther()

	if err := hub.Trigger("company:1:day:2024-01-10", EventTaskInstanceRefresh, map[string]any{"id": 5}); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	select {
	case event := <-dayEvents:
		if event.Name != EventTaskInstanceRefresh || event.ID == "" {
			t.Fatalf("unexpected event %#v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event on subscribed channel")
	}

	select {
	case event := <-otherEvents:
		t.Fatalf("unexpected event on other company channel: %#v", event)
	default:
	}
}

func TestHubDropsEventsForFullSubscribers(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe("company:1:lists")
	defer cancel()

	for index := 0; index < defaultSubscriberBuffer+5; index++ {
		if err := hub.Trigger("company:1:lists", EventTaskListsRefresh, nil); err != nil {
			t.Fatalf("trigger %d: %v", index, err)
		}
	}
	if len(events) != defaultSubscriberBuffer {
		t.Fatalf("expected buffer to cap at %d events, got %d", defaultSubscriberBuffer, len(events))
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe("company:1:lists")
	if hub.SubscriberCount("company:1:lists") != 1 {
		t.Fatal("expected one subscriber")
	}

	cancel()
	cancel()

	if hub.SubscriberCount("company:1:lists") != 0 {
		t.Fatal("expected subscriber to be removed")
	}
	if _, open := <-events; open {
		t.Fatal("expected event channel to be closed")
	}
	if err := hub.Trigger("company:1:lists", EventTaskListsRefresh, nil); err != nil {
		t.Fatalf("trigger after cancel: %v", err)
	}
}
