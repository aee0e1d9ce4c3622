package ports

import "context"

const (
	// EventModeChanged is emitted after the active light/dark mode changes.
	EventModeChanged = "theme.mode_changed"
	// EventBreakpointChanged is emitted when a resize moves the viewport into
	// a different breakpoint bucket.
	EventBreakpointChanged = "viewport.breakpoint_changed"
	// EventPreferenceChanged is emitted when the host color-scheme preference
	// changes, whether or not it causes a mode transition.
	EventPreferenceChanged = "environment.preference_changed"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run, so a subscriber observes
// the new state before the mutating call returns. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures are returned so publishers can log them and continue
// delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler or listener. Callers must invoke
// Unsubscribe to stop receiving notifications. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}
