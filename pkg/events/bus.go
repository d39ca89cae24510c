package events

import (
	"sync"
	"time"

	"github.com/jscyril/mediacore/api"
)

// Listener receives events synchronously from Publish.
type Listener interface {
	OnEvent(api.Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(api.Event)

func (f ListenerFunc) OnEvent(e api.Event) { f(e) }

// EventBus handles event distribution using channels and listeners
type EventBus struct {
	subscribers map[api.EventType][]chan api.Event
	listeners   []Listener
	closed      bool
	mu          sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[api.EventType][]chan api.Event),
	}
}

// Subscribe returns a channel for receiving events of the specified types
func (b *EventBus) Subscribe(types ...api.EventType) <-chan api.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan api.Event, 16)
	if b.closed {
		close(ch)
		return ch
	}
	for _, eventType := range types {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}
	return ch
}

// SubscribeAll returns a channel for receiving all event types
func (b *EventBus) SubscribeAll() <-chan api.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan api.Event, 64)
	if b.closed {
		close(ch)
		return ch
	}
	for _, eventType := range api.EventTypes() {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}
	return ch
}

// AddListener registers l for every event. Listeners run on the publishing
// goroutine and must not call back into the publisher.
func (b *EventBus) AddListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Publish broadcasts an event to all subscribers of that event type
func (b *EventBus) Publish(eventType api.EventType, payload any) {
	event := api.Event{Type: eventType, Payload: payload, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subscribers[event.Type] {
		select {
		case ch <- event:
		default:
			// Channel full, skip to prevent blocking
		}
	}
	for _, l := range b.listeners {
		l.OnEvent(event)
	}
}

// Unsubscribe removes a subscriber channel
func (b *EventBus) Unsubscribe(ch <-chan api.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub == ch {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close closes all subscriber channels. Publishing after Close is a no-op.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	// Track closed channels to avoid closing the same channel twice
	closed := make(map[chan api.Event]bool)

	for _, subs := range b.subscribers {
		for _, ch := range subs {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}
	b.subscribers = make(map[api.EventType][]chan api.Event)
	b.listeners = nil
}
