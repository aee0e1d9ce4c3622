package events

import (
	"context"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// Event is a plain DomainEvent carrying a typed name and payload.
type Event struct {
	Type string
	Data interface{}
}

// EventType implements ports.DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements ports.DomainEvent.
func (e Event) Payload() interface{} { return e.Data }

// Fielder lets payloads describe themselves as log fields.
type Fielder interface {
	LogFields() []interface{}
}

// Publisher dispatches domain events synchronously to subscribers and records
// each event as a debug log entry.
type Publisher struct {
	logger ports.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewPublisher creates an event publisher. A nil logger disables event logging.
func NewPublisher(logger ports.Logger) *Publisher {
	return &Publisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish logs the event and runs every handler registered for its type, in
// subscription order, before returning. Handler errors are logged and do not
// stop delivery.
func (p *Publisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.EventType()]...)
	p.mu.RUnlock()

	if p.logger != nil {
		p.logger.Debug(ctx, "domain event", eventFields(event)...)
	}

	for _, entry := range handlers {
		if entry.handler == nil {
			continue
		}
		if err := entry.handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}

	return nil
}

// Subscribe registers a handler for the provided event type.
func (p *Publisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	sub := &subscription{}
	sub.cancel = func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		handlers := p.subs[eventType]
		for i, entry := range handlers {
			if entry.id == id {
				p.subs[eventType] = append(handlers[:i:i], handlers[i+1:]...)
				break
			}
		}
		if len(p.subs[eventType]) == 0 {
			delete(p.subs, eventType)
		}
	}
	return sub, nil
}

// SubscriberCount reports how many handlers are registered for eventType.
func (p *Publisher) SubscriberCount(eventType string) int {
	if p == nil {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs[eventType])
}

func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}
	switch payload := event.Payload().(type) {
	case Fielder:
		fields = append(fields, payload.LogFields()...)
	case map[string]interface{}:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fields = append(fields, key, payload[key])
		}
	case nil:
	default:
		fields = append(fields, "payload", payload)
	}
	return fields
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}

var _ ports.EventPublisher = (*Publisher)(nil)
