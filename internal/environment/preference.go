// Package environment centralizes every read of host signals: the color
// scheme preference, viewport size and resize notifications, and touch
// capability. No other package reads these signals directly.
package environment

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Environment variable names read by the env-backed sources.
const (
	EnvColorScheme    = "THEMEKIT_COLOR_SCHEME"
	EnvColorFGBG      = "COLORFGBG"
	EnvTouchEvents    = "THEMEKIT_TOUCH_EVENTS"
	EnvMaxTouchPoints = "THEMEKIT_MAX_TOUCH_POINTS"
)

// Signal names used in EnvironmentSignalUnavailableError.
const (
	SignalPreference = "color-scheme"
	SignalViewport   = "viewport"
	SignalResize     = "resize"
	SignalTouch      = "touch"
)

// ParsePreference interprets "light" or "dark", case-insensitively.
func ParsePreference(s string) (ports.Preference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ports.PreferenceLight, true
	case "dark":
		return ports.PreferenceDark, true
	default:
		return ports.PreferenceNone, false
	}
}

// EnvPreference reads the preference from THEMEKIT_COLOR_SCHEME, then from
// the COLORFGBG convention ("fg;bg") used by many terminals.
type EnvPreference struct {
	Getenv func(string) string
}

// Current implements ports.PreferenceSource.
func (p EnvPreference) Current(context.Context) (ports.Preference, bool) {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if pref, ok := ParsePreference(getenv(EnvColorScheme)); ok {
		return pref, true
	}
	return parseColorFGBG(getenv(EnvColorFGBG))
}

// Watch implements ports.PreferenceSource. The process environment does not
// change, so there is nothing to observe.
func (p EnvPreference) Watch(context.Context, func(ports.Preference)) (ports.Subscription, error) {
	return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, nil)
}

// parseColorFGBG treats ANSI background 0-6 and 8 as dark.
func parseColorFGBG(value string) (ports.Preference, bool) {
	if value == "" {
		return ports.PreferenceNone, false
	}
	parts := strings.Split(value, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return ports.PreferenceNone, false
	}
	if (bg >= 0 && bg <= 6) || bg == 8 {
		return ports.PreferenceDark, true
	}
	return ports.PreferenceLight, true
}

// TerminalPreference queries the terminal background color through lipgloss.
// It reports nothing when stdout is not a terminal.
type TerminalPreference struct {
	// IsTerminal and HasDarkBackground default to the real terminal probes.
	IsTerminal        func() bool
	HasDarkBackground func() bool
}

// Current implements ports.PreferenceSource.
func (p TerminalPreference) Current(context.Context) (ports.Preference, bool) {
	isTerminal := p.IsTerminal
	if isTerminal == nil {
		isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	}
	if !isTerminal() {
		return ports.PreferenceNone, false
	}
	hasDark := p.HasDarkBackground
	if hasDark == nil {
		hasDark = lipgloss.HasDarkBackground
	}
	if hasDark() {
		return ports.PreferenceDark, true
	}
	return ports.PreferenceLight, true
}

// Watch implements ports.PreferenceSource. Terminals do not announce
// background changes.
func (p TerminalPreference) Watch(context.Context, func(ports.Preference)) (ports.Subscription, error) {
	return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, nil)
}

// ChainPreference consults sources in order. Current returns the first
// available preference; Watch observes every source that supports it and
// reports the chain's resolved preference on each change.
type ChainPreference []ports.PreferenceSource

// Current implements ports.PreferenceSource.
func (c ChainPreference) Current(ctx context.Context) (ports.Preference, bool) {
	for _, source := range c {
		if source == nil {
			continue
		}
		if pref, ok := source.Current(ctx); ok {
			return pref, true
		}
	}
	return ports.PreferenceNone, false
}

// Watch implements ports.PreferenceSource.
func (c ChainPreference) Watch(ctx context.Context, fn func(ports.Preference)) (ports.Subscription, error) {
	var (
		subs    []ports.Subscription
		lastErr error
	)
	for _, source := range c {
		if source == nil {
			continue
		}
		sub, err := source.Watch(ctx, func(ports.Preference) {
			if pref, ok := c.Current(ctx); ok {
				fn(pref)
			}
		})
		if err != nil {
			lastErr = err
			continue
		}
		subs = append(subs, sub)
	}
	if len(subs) == 0 {
		if lastErr == nil {
			lastErr = apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, nil)
		}
		return nil, lastErr
	}

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		})
	}), nil
}

// StaticPreference always reports the same preference. PreferenceNone means
// the host exposes no preference.
type StaticPreference ports.Preference

// Current implements ports.PreferenceSource.
func (p StaticPreference) Current(context.Context) (ports.Preference, bool) {
	pref := ports.Preference(p)
	return pref, pref != ports.PreferenceNone
}

// Watch implements ports.PreferenceSource.
func (p StaticPreference) Watch(context.Context, func(ports.Preference)) (ports.Subscription, error) {
	return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, nil)
}
