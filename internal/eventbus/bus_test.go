package eventbus

import (
	"testing"
	"time"

	"github.com/NexusOnePlus/spacedrive/schema"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe()
	defer cancel()

	event := schema.TabEvent{Type: schema.TabEventCreated, Tab: schema.Tab{ID: "tab1"}, ActiveTab: "tab1"}
	bus.OnTabEvent(event)

	select {
	case got := <-ch:
		if got.Type != schema.TabEventCreated {
			t.Fatalf("expected created event, got %v", got.Type)
		}
		if got.Tab.ID != "tab1" || got.ActiveTab != "tab1" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
	bus.OnTabEvent(schema.TabEvent{Type: schema.TabEventClosed})
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := New(nil)
	bus.depth = 1
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.OnTabEvent(schema.TabEvent{Type: schema.TabEventCreated})
	done := make(chan struct{})
	go func() {
		bus.OnTabEvent(schema.TabEvent{Type: schema.TabEventClosed})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("publish blocked on full channel")
	}
	if got := <-ch; got.Type != schema.TabEventCreated {
		t.Fatalf("expected first event to be kept, got %v", got.Type)
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	ch, cancel := bus.Subscribe()
	cancel()
	if ch != nil {
		t.Fatalf("expected nil channel from nil bus")
	}
	bus.OnTabEvent(schema.TabEvent{})
}
