package mode

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/resolver"
	"github.com/alexisbeaulieu97/themekit/internal/storage"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// fakePreference is an OS preference that tests can flip.
type fakePreference struct {
	mu        sync.Mutex
	pref      ports.Preference
	listeners []func(ports.Preference)
}

func (f *fakePreference) Current(context.Context) (ports.Preference, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pref, f.pref != ports.PreferenceNone
}

func (f *fakePreference) Watch(_ context.Context, fn func(ports.Preference)) (ports.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.listeners)
	f.listeners = append(f.listeners, fn)
	return ports.SubscriptionFunc(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listeners[idx] = nil
	}), nil
}

func (f *fakePreference) set(pref ports.Preference) {
	f.mu.Lock()
	f.pref = pref
	listeners := append(([]func(ports.Preference))(nil), f.listeners...)
	f.mu.Unlock()
	for _, fn := range listeners {
		if fn != nil {
			fn(pref)
		}
	}
}

// failingStore simulates a host with storage disabled.
type failingStore struct {
	mu    sync.Mutex
	calls int
}

func (s *failingStore) Get(context.Context, string) (string, bool, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return "", false, errors.New("storage disabled")
}

func (s *failingStore) Set(context.Context, string, string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return errors.New("storage disabled")
}

func (s *failingStore) Delete(context.Context, string) error {
	return errors.New("storage disabled")
}

func TestInitialModeDefaultsToLight(t *testing.T) {
	m := NewManager(context.Background(), Options{})
	assert.Equal(t, tokens.ModeLight, m.Current())
	assert.False(t, m.IsDark())
	assert.False(t, m.HasExplicitChoice())
}

func TestInitialModeFollowsPreference(t *testing.T) {
	m := NewManager(context.Background(), Options{Preference: &fakePreference{pref: ports.PreferenceDark}})
	assert.Equal(t, tokens.ModeDark, m.Current())
	assert.False(t, m.HasExplicitChoice())
}

func TestPersistedChoiceWinsOverPreference(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.DefaultKey, "light"))

	m := NewManager(ctx, Options{Store: store, Preference: &fakePreference{pref: ports.PreferenceDark}})
	assert.Equal(t, tokens.ModeLight, m.Current())
	assert.True(t, m.HasExplicitChoice())
}

func TestInvalidPersistedValueIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.DefaultKey, "sepia"))

	m := NewManager(ctx, Options{Store: store, Preference: &fakePreference{pref: ports.PreferenceDark}})
	assert.Equal(t, tokens.ModeDark, m.Current())
	assert.False(t, m.HasExplicitChoice())
}

func TestExplicitChoiceIgnoresLaterPreferenceChanges(t *testing.T) {
	ctx := context.Background()
	pref := &fakePreference{pref: ports.PreferenceDark}
	m := NewManager(ctx, Options{Store: storage.NewMemoryStore(), Preference: pref})

	sub, err := m.WatchPreference(ctx)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.Equal(t, tokens.ModeDark, m.Current())

	m.SetTheme(ctx, tokens.ModeLight)
	pref.set(ports.PreferenceLight)
	pref.set(ports.PreferenceDark)

	assert.Equal(t, tokens.ModeLight, m.Current())
}

func TestPreferenceChangesApplyWithoutExplicitChoice(t *testing.T) {
	ctx := context.Background()
	pref := &fakePreference{pref: ports.PreferenceLight}
	store := storage.NewMemoryStore()
	m := NewManager(ctx, Options{Store: store, Preference: pref})

	var changes []Change
	_, err := m.Subscribe(func(c Change) { changes = append(changes, c) })
	require.NoError(t, err)

	sub, err := m.WatchPreference(ctx)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	pref.set(ports.PreferenceDark)

	assert.Equal(t, tokens.ModeDark, m.Current())
	require.Len(t, changes, 1)
	assert.Equal(t, SourcePreference, changes[0].Source)
	assert.False(t, changes[0].Explicit)

	_, found, err := store.Get(ctx, storage.DefaultKey)
	require.NoError(t, err)
	assert.False(t, found, "OS-driven transitions are not persisted")
}

func TestSetThemeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, Options{})

	count := 0
	_, err := m.Subscribe(func(Change) { count++ })
	require.NoError(t, err)

	m.SetTheme(ctx, tokens.ModeDark)
	m.SetTheme(ctx, tokens.ModeDark)

	assert.Equal(t, tokens.ModeDark, m.Current())
	assert.True(t, m.HasExplicitChoice())
	assert.Equal(t, 1, count)
}

func TestToggleTwiceRestoresMode(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, Options{})

	assert.Equal(t, tokens.ModeDark, m.Toggle(ctx))
	assert.Equal(t, tokens.ModeLight, m.Toggle(ctx))
	assert.Equal(t, tokens.ModeLight, m.Current())
}

func TestInvalidModeIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(ctx, Options{Store: store})

	count := 0
	_, err := m.Subscribe(func(Change) { count++ })
	require.NoError(t, err)

	m.SetTheme(ctx, tokens.Mode("sepia"))
	assert.False(t, m.SetThemeName(ctx, "blue"))

	assert.Equal(t, tokens.ModeLight, m.Current())
	assert.False(t, m.HasExplicitChoice())
	assert.Zero(t, count)
	_, found, _ := store.Get(ctx, storage.DefaultKey)
	assert.False(t, found)

	assert.True(t, m.SetThemeName(ctx, "DARK"))
	assert.Equal(t, tokens.ModeDark, m.Current())
}

func TestSubscribersSeeNewStateSynchronously(t *testing.T) {
	ctx := context.Background()
	r := resolver.New(nil, nil)
	m := NewManager(ctx, Options{Derive: r.Variables})

	var observed tokens.Mode
	var vars resolver.Variables
	sub, err := m.Subscribe(func(c Change) {
		observed = m.Current()
		vars = c.Variables
		assert.Equal(t, tokens.ModeLight, c.Previous)
	})
	require.NoError(t, err)

	m.SetTheme(ctx, tokens.ModeDark)
	assert.Equal(t, tokens.ModeDark, observed)
	assert.Equal(t, "#f8fafc", vars["color.text.primary"])

	sub.Unsubscribe()
	m.SetTheme(ctx, tokens.ModeLight)
	assert.Equal(t, tokens.ModeDark, observed, "unsubscribed handler must not run")
}

func TestRoundTripAcrossReload(t *testing.T) {
	ctx := context.Background()

	stores := map[string]func(t *testing.T) ports.KeyValueStore{
		"memory": func(*testing.T) ports.KeyValueStore { return storage.NewMemoryStore() },
		"file": func(t *testing.T) ports.KeyValueStore {
			s, err := storage.NewFileStore(t.TempDir() + "/state.json")
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) ports.KeyValueStore {
			s, err := storage.OpenSQLiteInMemory(ctx)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			for _, mode := range []tokens.Mode{tokens.ModeDark, tokens.ModeLight} {
				first := NewManager(ctx, Options{Store: store})
				first.SetTheme(ctx, mode)

				reloaded := NewManager(ctx, Options{Store: store, Preference: &fakePreference{pref: ports.Preference(mode.Opposite())}})
				assert.Equal(t, mode, reloaded.Current())
				assert.True(t, reloaded.HasExplicitChoice())
			}
		})
	}
}

func TestPersistenceFailureIsReportedOnce(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Writer: buf, Format: "logfmt"})
	require.NoError(t, err)

	store := &failingStore{}
	m := NewManager(ctx, Options{Store: store, Logger: logger})

	for i := 0; i < 5; i++ {
		m.Toggle(ctx)
	}
	m.ClearChoice(ctx)

	assert.Equal(t, tokens.ModeLight, m.Current())
	assert.Equal(t, 1, strings.Count(buf.String(), "theme choice will not be persisted"))
	assert.ErrorIs(t, m.PersistenceErr(), apperrors.ErrPersistenceUnavailable)
	assert.Equal(t, 6, store.calls, "every transition still attempts to persist")
}

func TestStateWorksInMemoryWhenPersistenceFails(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, Options{Store: storage.Unavailable{}})

	m.SetTheme(ctx, tokens.ModeDark)
	assert.Equal(t, tokens.ModeDark, m.Current())
	assert.True(t, m.HasExplicitChoice())
	assert.Error(t, m.PersistenceErr())
}

func TestClearChoiceResumesPreferenceTracking(t *testing.T) {
	ctx := context.Background()
	pref := &fakePreference{pref: ports.PreferenceDark}
	store := storage.NewMemoryStore()
	m := NewManager(ctx, Options{Store: store, Preference: pref})

	sub, err := m.WatchPreference(ctx)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	m.SetTheme(ctx, tokens.ModeLight)
	var sources []Source
	_, err = m.Subscribe(func(c Change) { sources = append(sources, c.Source) })
	require.NoError(t, err)

	m.ClearChoice(ctx)
	assert.Equal(t, tokens.ModeDark, m.Current())
	assert.False(t, m.HasExplicitChoice())
	_, found, _ := store.Get(ctx, storage.DefaultKey)
	assert.False(t, found)

	pref.set(ports.PreferenceLight)
	assert.Equal(t, tokens.ModeLight, m.Current())
	assert.Equal(t, []Source{SourceCleared, SourcePreference}, sources)
}

func TestWatchPreferenceWithoutSource(t *testing.T) {
	m := NewManager(context.Background(), Options{})
	_, err := m.WatchPreference(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrEnvironmentSignalUnavailable)
}

func TestNilManagerCurrent(t *testing.T) {
	var m *Manager
	assert.Equal(t, tokens.ModeLight, m.Current())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, Options{Store: storage.NewMemoryStore()})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Toggle(ctx)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.True(t, m.Current().Valid())
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, tokens.ModeLight, m.Current(), "an even number of toggles returns to the start")
}
