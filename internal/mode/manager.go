// Package mode holds the process-wide light/dark mode: its initial
// resolution, explicit changes, persistence, and OS preference tracking.
package mode

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/resolver"
	"github.com/alexisbeaulieu97/themekit/internal/storage"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Source names what caused a mode change.
type Source string

const (
	SourceExplicit   Source = "explicit"
	SourcePreference Source = "preference"
	SourceCleared    Source = "cleared"
)

// Change is the payload of a theme.mode_changed event.
type Change struct {
	Previous  tokens.Mode
	Current   tokens.Mode
	Source    Source
	Explicit  bool
	Variables resolver.Variables
}

// LogFields implements events.Fielder.
func (c Change) LogFields() []interface{} {
	return []interface{}{
		"previous", c.Previous.String(),
		"mode", c.Current.String(),
		"source", string(c.Source),
		"explicit", c.Explicit,
	}
}

// PreferenceChange is the payload of an environment.preference_changed event.
type PreferenceChange struct {
	Preference ports.Preference
	Applied    bool
}

// LogFields implements events.Fielder.
func (c PreferenceChange) LogFields() []interface{} {
	return []interface{}{"preference", string(c.Preference), "applied", c.Applied}
}

// Options carries the manager's collaborators. Every field is optional.
type Options struct {
	// Store persists the explicit choice. Nil keeps the choice in memory only.
	Store ports.KeyValueStore
	// Key is the storage key; defaults to storage.DefaultKey.
	Key string
	// Preference supplies the OS color-scheme preference.
	Preference ports.PreferenceSource
	Publisher  ports.EventPublisher
	Logger     ports.Logger
	// Derive computes the presentation variables published with each change.
	Derive func(tokens.Mode) resolver.Variables
}

// Manager is the single source of truth for the active mode. Reads are
// concurrent; writes (setters and the preference handler) are serialized.
// Subscribers run synchronously before a setter returns and must not call
// setters themselves.
type Manager struct {
	store      ports.KeyValueStore
	key        string
	preference ports.PreferenceSource
	publisher  ports.EventPublisher
	logger     ports.Logger
	derive     func(tokens.Mode) resolver.Variables

	write sync.Mutex

	mu         sync.RWMutex
	mode       tokens.Mode
	explicit   bool
	persistErr error
	reported   bool
}

// NewManager resolves the initial mode: a persisted explicit choice, then the
// OS preference, then light.
func NewManager(ctx context.Context, opts Options) *Manager {
	logger := logging.OrNoOp(opts.Logger).With("component", "mode")
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NewPublisher(logger)
	}
	key := opts.Key
	if key == "" {
		key = storage.DefaultKey
	}

	m := &Manager{
		store:      opts.Store,
		key:        key,
		preference: opts.Preference,
		publisher:  publisher,
		logger:     logger,
		derive:     opts.Derive,
		mode:       tokens.DefaultMode,
	}

	if persisted, ok := m.loadPersisted(ctx); ok {
		m.mode = persisted
		m.explicit = true
	} else if pref, ok := m.currentPreference(ctx); ok {
		m.mode = pref
	}

	m.logger.Debug(ctx, "mode initialized", "mode", m.mode.String(), "explicit", m.explicit)
	return m
}

// Current returns the active mode. A nil manager reports the default mode.
func (m *Manager) Current() tokens.Mode {
	if m == nil {
		return tokens.DefaultMode
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// IsDark reports whether the active mode is dark.
func (m *Manager) IsDark() bool {
	return m.Current() == tokens.ModeDark
}

// HasExplicitChoice reports whether a user choice overrides the OS preference.
func (m *Manager) HasExplicitChoice() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.explicit
}

// PersistenceErr returns the first persistence failure, if any.
func (m *Manager) PersistenceErr() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persistErr
}

// Variables derives the presentation variables for the active mode.
func (m *Manager) Variables() resolver.Variables {
	if m.derive == nil {
		return nil
	}
	return m.derive(m.Current())
}

// SetTheme makes mode the explicit choice, persists it, and notifies
// subscribers when the mode changed. Invalid modes are ignored.
func (m *Manager) SetTheme(ctx context.Context, mode tokens.Mode) {
	if !mode.Valid() {
		return
	}
	m.write.Lock()
	defer m.write.Unlock()
	m.setLocked(ctx, mode)
}

// SetThemeName parses name and applies it. It reports whether name was valid.
func (m *Manager) SetThemeName(ctx context.Context, name string) bool {
	mode, ok := tokens.ParseMode(name)
	if !ok {
		return false
	}
	m.SetTheme(ctx, mode)
	return true
}

// Toggle switches to the opposite mode as an explicit choice and returns it.
func (m *Manager) Toggle(ctx context.Context) tokens.Mode {
	m.write.Lock()
	defer m.write.Unlock()
	next := m.Current().Opposite()
	m.setLocked(ctx, next)
	return next
}

func (m *Manager) setLocked(ctx context.Context, mode tokens.Mode) {
	if m.store != nil {
		if err := m.store.Set(ctx, m.key, mode.String()); err != nil {
			m.notePersistenceErr(ctx, "set", err)
		}
	}

	m.mu.Lock()
	previous := m.mode
	m.mode = mode
	m.explicit = true
	m.mu.Unlock()

	if previous != mode {
		m.publish(ctx, previous, mode, SourceExplicit, true)
	}
}

// ClearChoice removes the persisted choice and resumes following the OS
// preference, falling back to light when there is none.
func (m *Manager) ClearChoice(ctx context.Context) {
	m.write.Lock()
	defer m.write.Unlock()

	if m.store != nil {
		if err := m.store.Delete(ctx, m.key); err != nil {
			m.notePersistenceErr(ctx, "delete", err)
		}
	}

	next := tokens.DefaultMode
	if pref, ok := m.currentPreference(ctx); ok {
		next = pref
	}

	m.mu.Lock()
	previous := m.mode
	m.mode = next
	m.explicit = false
	m.mu.Unlock()

	if previous != next {
		m.publish(ctx, previous, next, SourceCleared, false)
	}
}

// WatchPreference follows OS preference changes until the subscription is
// released or ctx ends. Changes apply only while no explicit choice exists
// and are never persisted.
func (m *Manager) WatchPreference(ctx context.Context) (ports.Subscription, error) {
	if m.preference == nil {
		err := apperrors.NewEnvironmentSignalUnavailableError("color-scheme", errors.New("no preference source configured"))
		m.logger.Info(ctx, "preference tracking unavailable", "error", err)
		return nil, err
	}
	sub, err := m.preference.Watch(ctx, func(pref ports.Preference) {
		m.applyPreference(ctx, pref)
	})
	if err != nil {
		m.logger.Info(ctx, "preference tracking unavailable", "error", err)
		return nil, err
	}
	return sub, nil
}

func (m *Manager) applyPreference(ctx context.Context, pref ports.Preference) {
	mode, ok := tokens.ParseMode(string(pref))
	if !ok {
		return
	}

	m.write.Lock()
	defer m.write.Unlock()

	m.mu.Lock()
	previous := m.mode
	applied := !m.explicit && previous != mode
	if applied {
		m.mode = mode
	}
	m.mu.Unlock()

	_ = m.publisher.Publish(ctx, events.Event{
		Type: ports.EventPreferenceChanged,
		Data: PreferenceChange{Preference: pref, Applied: applied},
	})
	if applied {
		m.publish(ctx, previous, mode, SourcePreference, false)
	}
}

// Subscribe registers fn for mode changes.
func (m *Manager) Subscribe(fn func(Change)) (ports.Subscription, error) {
	return m.publisher.Subscribe(ports.EventModeChanged, func(_ context.Context, event ports.DomainEvent) error {
		if change, ok := event.Payload().(Change); ok {
			fn(change)
		}
		return nil
	})
}

func (m *Manager) publish(ctx context.Context, previous, current tokens.Mode, source Source, explicit bool) {
	change := Change{
		Previous: previous,
		Current:  current,
		Source:   source,
		Explicit: explicit,
	}
	if m.derive != nil {
		change.Variables = m.derive(current)
	}
	if err := m.publisher.Publish(ctx, events.Event{Type: ports.EventModeChanged, Data: change}); err != nil {
		m.logger.Warn(ctx, "publish mode change failed", "error", err)
	}
}

func (m *Manager) loadPersisted(ctx context.Context) (tokens.Mode, bool) {
	if m.store == nil {
		return "", false
	}
	value, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.notePersistenceErr(ctx, "get", err)
		return "", false
	}
	if !found {
		return "", false
	}
	mode, ok := tokens.ParseMode(value)
	if !ok {
		m.logger.Warn(ctx, "ignoring invalid persisted mode", "key", m.key, "value", value)
		return "", false
	}
	return mode, true
}

func (m *Manager) currentPreference(ctx context.Context) (tokens.Mode, bool) {
	if m.preference == nil {
		return "", false
	}
	pref, ok := m.preference.Current(ctx)
	if !ok {
		return "", false
	}
	return tokens.ParseMode(string(pref))
}

// notePersistenceErr records the failure and logs only the first one.
func (m *Manager) notePersistenceErr(ctx context.Context, op string, err error) {
	var perr *apperrors.PersistenceUnavailableError
	if !errors.As(err, &perr) {
		err = apperrors.NewPersistenceUnavailableError(op, m.key, err)
	}

	m.mu.Lock()
	first := !m.reported
	m.reported = true
	if m.persistErr == nil {
		m.persistErr = err
	}
	m.mu.Unlock()

	if first {
		m.logger.Warn(ctx, "theme choice will not be persisted", "key", m.key, "error", err)
	}
}
