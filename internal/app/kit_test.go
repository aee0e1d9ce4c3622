package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/environment"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/mode"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/projection"
	"github.com/alexisbeaulieu97/themekit/internal/storage"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Driver = storage.DriverFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "state.json")
	return &cfg
}

func newKit(t *testing.T, cfg *config.Config, pref ports.Preference) *Kit {
	t.Helper()
	kit, err := New(context.Background(), Options{
		Config:     cfg,
		Logger:     logging.NewNoOpLogger(),
		Preference: environment.StaticPreference(pref),
		Touch:      environment.StaticTouch{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = kit.Close() })
	return kit
}

func TestKitResolvesAgainstManagerMode(t *testing.T) {
	ctx := context.Background()
	kit := newKit(t, testConfig(t), ports.PreferenceDark)

	assert.Equal(t, tokens.ModeDark, kit.Modes.Current())
	assert.Equal(t, "#f8fafc", kit.Resolver.Color("text", 0))

	kit.Modes.SetTheme(ctx, tokens.ModeLight)
	assert.Equal(t, "#0f172a", kit.Resolver.Color("text", 0))
}

func TestKitPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	first := newKit(t, cfg, ports.PreferenceLight)
	first.Modes.SetTheme(ctx, tokens.ModeDark)
	require.NoError(t, first.Close())

	second := newKit(t, cfg, ports.PreferenceLight)
	assert.Equal(t, tokens.ModeDark, second.Modes.Current())
	assert.True(t, second.Modes.HasExplicitChoice())
}

func TestKitPublishesModeChangesWithVariables(t *testing.T) {
	ctx := context.Background()
	kit := newKit(t, testConfig(t), ports.PreferenceNone)

	var received []mode.Change
	sub, err := kit.Events.Subscribe(ports.EventModeChanged, func(_ context.Context, event ports.DomainEvent) error {
		received = append(received, event.Payload().(mode.Change))
		return nil
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	kit.Modes.Toggle(ctx)
	require.Len(t, received, 1)
	assert.Equal(t, tokens.ModeDark, received[0].Current)
	assert.Equal(t, "#f8fafc", received[0].Variables["color.text.primary"])
}

func TestKitProjectsAtEngineBreakpoint(t *testing.T) {
	kit := newKit(t, testConfig(t), ports.PreferenceLight)

	viewport := environment.NewManualViewport()
	viewport.Set(ports.Viewport{Width: 800, Height: 600})
	sub, err := kit.Engine.Attach(context.Background(), viewport)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	style := kit.Projector.Resolve(projection.ResponsiveStyle{
		Padding: projection.Static("sm").At("md", "lg"),
	})
	assert.Equal(t, "md", kit.Engine.CurrentBreakpoint())
	assert.Equal(t, tokens.Length(24), style.Padding)
	assert.True(t, kit.Engine.IsTablet())
}

func TestKitLoadsTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("breakpoints:\n  - name: narrow\n    min_width: 0\n  - name: wide\n    min_width: 1000\n"), 0o644))

	cfg := testConfig(t)
	cfg.TokensFile = path
	kit := newKit(t, cfg, ports.PreferenceLight)

	assert.Equal(t, []string{"narrow", "wide"}, kit.Engine.Table().Names())
}

func TestKitRejectsBadTokenFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokensFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), Options{Config: cfg, Logger: logging.NewNoOpLogger()})
	var perr *apperrors.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestKitDegradesWhenStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Storage.Driver = storage.DriverNone
	kit := newKit(t, cfg, ports.PreferenceLight)

	kit.Modes.SetTheme(ctx, tokens.ModeDark)
	assert.Equal(t, tokens.ModeDark, kit.Modes.Current())
	assert.ErrorIs(t, kit.Modes.PersistenceErr(), apperrors.ErrPersistenceUnavailable)
}

func TestNewLoggerBackends(t *testing.T) {
	var buf bytes.Buffer

	charm, err := NewLogger(config.LogConfig{Level: "info", Format: "logfmt", Backend: "charm"}, &buf)
	require.NoError(t, err)
	charm.Info(context.Background(), "hello", "key", "value")
	assert.Contains(t, buf.String(), "hello")

	buf.Reset()
	zl, err := NewLogger(config.LogConfig{Level: "info", Format: "json", Backend: "zerolog"}, &buf)
	require.NoError(t, err)
	zl.Info(context.Background(), "hello", "key", "value")
	assert.Contains(t, buf.String(), `"key":"value"`)

	_, err = NewLogger(config.LogConfig{Backend: "syslog"}, &buf)
	assert.Error(t, err)
}
