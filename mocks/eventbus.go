package mocks

import (
	"context"
	"sync"
)

// EventBus records published events instead of sending them anywhere.
type EventBus struct {
	mu        sync.Mutex
	Published []any
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Publish(_ context.Context, event any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Published = append(b.Published, event)
	return nil
}

func (b *EventBus) Events() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]any, len(b.Published))
	copy(out, b.Published)
	return out
}
