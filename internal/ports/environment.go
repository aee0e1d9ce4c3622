package ports

import "context"

// Preference is the host color-scheme preference.
type Preference string

const (
	PreferenceNone  Preference = ""
	PreferenceLight Preference = "light"
	PreferenceDark  Preference = "dark"
)

// PreferenceSource reports the OS-level color-scheme preference.
type PreferenceSource interface {
	// Current returns the preference, or PreferenceNone with ok=false when the
	// host does not expose one.
	Current(ctx context.Context) (pref Preference, ok bool)
	// Watch delivers subsequent changes until the subscription is released or
	// ctx is cancelled. Hosts that cannot observe changes return an
	// EnvironmentSignalUnavailableError.
	Watch(ctx context.Context, fn func(Preference)) (Subscription, error)
}

// Viewport is a snapshot of the viewport size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// ViewportSource samples viewport dimensions and reports resizes.
type ViewportSource interface {
	Size(ctx context.Context) (Viewport, error)
	OnResize(ctx context.Context, fn func(Viewport)) (Subscription, error)
}

// TouchSignals are the raw touch-capability signals a host exposes.
type TouchSignals struct {
	TouchEvents    bool
	MaxTouchPoints int
}

// TouchSource reports touch-capability signals.
type TouchSource interface {
	Touch(ctx context.Context) (TouchSignals, error)
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}
