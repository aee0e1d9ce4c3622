// Package responsive classifies the viewport against a breakpoint table and
// exposes the result as predicates and change notifications.
package responsive

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

// Default breakpoint names used by the device predicates.
const (
	DefaultTabletBreakpoint  = "md"
	DefaultDesktopBreakpoint = "lg"
)

// Change is the payload of a viewport.breakpoint_changed event.
type Change struct {
	Previous string
	Current  string
	Viewport ports.Viewport
}

// LogFields implements events.Fielder.
func (c Change) LogFields() []interface{} {
	return []interface{}{
		"previous", c.Previous,
		"breakpoint", c.Current,
		"width", c.Viewport.Width,
		"height", c.Viewport.Height,
	}
}

// Classify returns the name of the greatest breakpoint whose minimum width
// does not exceed width. Widths below every minimum classify as the smallest
// breakpoint.
func Classify(table tokens.BreakpointTable, width int) string {
	return table.Classify(width)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger ports.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNoOp(logger) }
}

// WithPublisher sets the publisher used for breakpoint changes.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(e *Engine) { e.publisher = publisher }
}

// WithTouchSource sets where touch capability is read from at construction.
func WithTouchSource(source ports.TouchSource) Option {
	return func(e *Engine) { e.touchSource = source }
}

// WithDeviceThresholds sets the breakpoints at which tablet and desktop start.
func WithDeviceThresholds(tablet, desktop string) Option {
	return func(e *Engine) {
		if tablet != "" {
			e.tabletAt = tablet
		}
		if desktop != "" {
			e.desktopAt = desktop
		}
	}
}

// Engine holds the last viewport snapshot and its classification. Update is
// the only writer and concurrent calls to it are serialized; every other
// method only reads.
type Engine struct {
	table       tokens.BreakpointTable
	publisher   ports.EventPublisher
	logger      ports.Logger
	touchSource ports.TouchSource
	tabletAt    string
	desktopAt   string
	touch       bool

	// write serializes Update so published changes follow the final state.
	write sync.Mutex

	mu       sync.RWMutex
	viewport ports.Viewport
	current  string
}

// NewEngine builds an engine over table (the built-in table when empty).
// Until a viewport source reports a size the engine assumes a desktop-sized
// viewport. Touch capability is detected once here.
func NewEngine(table tokens.BreakpointTable, opts ...Option) *Engine {
	if len(table) == 0 {
		table = tokens.DefaultTables().Breakpoints
	}
	e := &Engine{
		table:     append(tokens.BreakpointTable(nil), table...),
		logger:    logging.NewNoOpLogger(),
		tabletAt:  DefaultTabletBreakpoint,
		desktopAt: DefaultDesktopBreakpoint,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "responsive")
	if e.publisher == nil {
		e.publisher = events.NewPublisher(e.logger)
	}

	e.viewport = ports.Viewport{Width: e.fallbackWidth()}
	e.current = Classify(e.table, e.viewport.Width)
	e.touch = e.detectTouch(context.Background())
	return e
}

// fallbackWidth is the desktop threshold's minimum, or the largest minimum
// when the table has no such breakpoint.
func (e *Engine) fallbackWidth() int {
	if width, ok := e.table.MinWidth(e.desktopAt); ok {
		return width
	}
	return e.table[len(e.table)-1].MinWidth
}

func (e *Engine) detectTouch(ctx context.Context) bool {
	if e.touchSource == nil {
		return false
	}
	signals, err := e.touchSource.Touch(ctx)
	if err != nil {
		e.logger.Debug(ctx, "touch signals unavailable", "error", err)
		return false
	}
	return signals.TouchEvents || signals.MaxTouchPoints > 0
}

// Attach samples source's current size and follows its resize notifications.
// Failures are logged and returned; the engine keeps its last snapshot, and
// the returned subscription is always safe to release.
func (e *Engine) Attach(ctx context.Context, source ports.ViewportSource) (ports.Subscription, error) {
	var errs []error

	if size, err := source.Size(ctx); err != nil {
		e.logger.Warn(ctx, "viewport size unavailable, keeping fallback", "error", err)
		errs = append(errs, err)
	} else {
		e.Update(ctx, size)
	}

	sub, err := source.OnResize(ctx, func(size ports.Viewport) {
		e.Update(ctx, size)
	})
	if err != nil {
		e.logger.Warn(ctx, "resize notifications unavailable", "error", err)
		errs = append(errs, err)
	}
	if sub == nil {
		sub = ports.SubscriptionFunc(func() {})
	}
	return sub, errors.Join(errs...)
}

// Update records a new viewport snapshot. Subscribers are notified, before
// Update returns, only when the breakpoint bucket changes.
func (e *Engine) Update(ctx context.Context, size ports.Viewport) {
	e.write.Lock()
	defer e.write.Unlock()

	next := Classify(e.table, size.Width)

	e.mu.Lock()
	previous := e.current
	e.viewport = size
	e.current = next
	e.mu.Unlock()

	if previous == next {
		return
	}
	err := e.publisher.Publish(ctx, events.Event{
		Type: ports.EventBreakpointChanged,
		Data: Change{Previous: previous, Current: next, Viewport: size},
	})
	if err != nil {
		e.logger.Warn(ctx, "publish breakpoint change failed", "error", err)
	}
}

// Subscribe registers fn for breakpoint bucket changes.
func (e *Engine) Subscribe(fn func(Change)) (ports.Subscription, error) {
	return e.publisher.Subscribe(ports.EventBreakpointChanged, func(_ context.Context, event ports.DomainEvent) error {
		if change, ok := event.Payload().(Change); ok {
			fn(change)
		}
		return nil
	})
}

// Table returns a copy of the breakpoint table.
func (e *Engine) Table() tokens.BreakpointTable {
	return append(tokens.BreakpointTable(nil), e.table...)
}

// Viewport returns the last snapshot.
func (e *Engine) Viewport() ports.Viewport {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewport
}

// CurrentBreakpoint returns the active breakpoint name. It is always a member
// of the table.
func (e *Engine) CurrentBreakpoint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// IsAtLeast reports whether the viewport is at least as wide as name's
// minimum. Unknown names report false.
func (e *Engine) IsAtLeast(name string) bool {
	minWidth, ok := e.table.MinWidth(name)
	if !ok {
		return false
	}
	return e.Viewport().Width >= minWidth
}

// IsBelow reports whether the viewport is narrower than name's minimum.
// Unknown names report false.
func (e *Engine) IsBelow(name string) bool {
	minWidth, ok := e.table.MinWidth(name)
	if !ok {
		return false
	}
	return e.Viewport().Width < minWidth
}

// IsMobile reports whether the viewport is below the tablet threshold.
func (e *Engine) IsMobile() bool {
	return e.IsBelow(e.tabletAt)
}

// IsTablet reports whether the viewport is between the tablet and desktop
// thresholds.
func (e *Engine) IsTablet() bool {
	return e.IsAtLeast(e.tabletAt) && e.IsBelow(e.desktopAt)
}

// IsDesktop reports whether the viewport reaches the desktop threshold.
func (e *Engine) IsDesktop() bool {
	return e.IsAtLeast(e.desktopAt)
}

// IsTouchCapable reports the touch capability detected at construction.
func (e *Engine) IsTouchCapable() bool {
	return e.touch
}
