package core

import "github.com/NexusOnePlus/spacedrive/schema"

// EventSink receives tab list events from the manager.
type EventSink interface {
	OnTabEvent(event schema.TabEvent)
}

// EventFanout forwards events to every non-nil sink.
type EventFanout []EventSink

// OnTabEvent implements EventSink.
func (f EventFanout) OnTabEvent(event schema.TabEvent) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.OnTabEvent(event)
	}
}
