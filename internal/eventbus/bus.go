package eventbus

import (
	"context"
	"sync"

	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

// Bus fans tab events out to channel subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[chan schema.TabEvent]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[chan schema.TabEvent]struct{}),
		log:   logger,
		depth: 64,
	}
}

// Subscribe registers a subscriber and returns a channel + cancel.
func (b *Bus) Subscribe() (<-chan schema.TabEvent, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.TabEvent, b.depth)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	b.log.Debug("eventbus subscribe", "subs", count)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
			b.log.Debug("eventbus unsubscribe")
		})
	}
}

// OnTabEvent publishes a tab event without blocking; full subscribers miss it.
func (b *Bus) OnTabEvent(event schema.TabEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) == 0 {
		return
	}
	dropped := 0
	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.log.Trace("eventbus dropped", "count", dropped, "type", event.Type)
	}
}
