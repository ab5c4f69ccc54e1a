package testutil

import (
	"context"
	"sync"

	"github.com/subplane/subplane/internal/events"
)

// InMemoryEventPublisher records published events so tests can assert on
// emission order and payloads.
type InMemoryEventPublisher struct {
	mu     sync.RWMutex
	events []events.Event
}

func NewInMemoryEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *InMemoryEventPublisher) Close() error {
	return nil
}

func (p *InMemoryEventPublisher) Events() []events.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]events.Event, len(p.events))
	copy(result, p.events)
	return result
}

func (p *InMemoryEventPublisher) EventsByName(name string) []events.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var result []events.Event
	for _, ev := range p.events {
		if ev.EventName() == name {
			result = append(result, ev)
		}
	}
	return result
}

func (p *InMemoryEventPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
