package event

import (
	"fmt"
	"log"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
)

// Handler is a function that handles an event.
type Handler func(Event)

// PanicHandler receives a recovered handler panic together with the event
// being delivered and the goroutine stack.
type PanicHandler func(e Event, recovered any, stack []byte)

const wildcard = "*"

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous pub-sub event bus.
// Publish returns only after every matching handler has run.
type Bus struct {
	mu      sync.RWMutex
	byType  map[string][]subscription
	owner   map[string]string // subscription ID -> event type
	nextID  atomic.Uint64
	onPanic PanicHandler
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		byType: make(map[string][]subscription),
		owner:  make(map[string]string),
	}
}

// SetPanicHandler replaces the default panic reporter (the standard logger).
func (b *Bus) SetPanicHandler(h PanicHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = h
}

// Subscribe registers handler for eventType and returns the subscription ID.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.byType[eventType] = append(b.byType[eventType], subscription{id: id, handler: handler})
	b.owner[id] = eventType
	return id
}

// SubscribeAll registers handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription by ID and reports whether it existed.
// A handler removed while an event is being delivered still receives that
// event.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	eventType, ok := b.owner[id]
	if !ok {
		return false
	}
	delete(b.owner, id)
	b.byType[eventType] = slices.DeleteFunc(b.byType[eventType], func(s subscription) bool {
		return s.id == id
	})
	if len(b.byType[eventType]) == 0 {
		delete(b.byType, eventType)
	}
	return true
}

// Publish delivers event to the handlers of its type in registration order,
// then to the wildcard handlers. A panicking handler is recovered and
// reported; delivery continues.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	targets := append(slices.Clone(b.byType[event.EventType()]), b.byType[wildcard]...)
	onPanic := b.onPanic
	b.mu.RUnlock()

	for _, sub := range targets {
		b.deliver(sub.handler, event, onPanic)
	}
}

func (b *Bus) deliver(handler Handler, event Event, onPanic PanicHandler) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		stack := debug.Stack()
		if onPanic != nil {
			onPanic(event, r, stack)
			return
		}
		log.Printf("ERROR: event handler panicked for event %s: %v\n%s", event.EventType(), r, stack)
	}()
	handler(event)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.byType)
	clear(b.owner)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.owner)
}
