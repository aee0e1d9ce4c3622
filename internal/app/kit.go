// Package app wires the theme engine from configuration.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/environment"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/logger"
	"github.com/alexisbeaulieu97/themekit/internal/mode"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/projection"
	"github.com/alexisbeaulieu97/themekit/internal/resolver"
	"github.com/alexisbeaulieu97/themekit/internal/responsive"
	"github.com/alexisbeaulieu97/themekit/internal/storage"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

// Options overrides the collaborators New would otherwise build from Config.
type Options struct {
	Config     *config.Config
	Logger     ports.Logger
	LogWriter  io.Writer
	Store      storage.Store
	Preference ports.PreferenceSource
	Touch      ports.TouchSource
}

// Kit bundles the long-lived services created at startup.
type Kit struct {
	Config    *config.Config
	Logger    ports.Logger
	Events    *events.Publisher
	Store     storage.Store
	Tokens    *tokens.Store
	Resolver  *resolver.Resolver
	Modes     *mode.Manager
	Engine    *responsive.Engine
	Projector *projection.Projector

	ownsStore bool
}

// New builds a Kit. Token and configuration errors are fatal. A store that
// cannot be opened degrades to storage.Unavailable, so the mode still works
// for the session and the manager reports the persistence error.
func New(ctx context.Context, opts Options) (*Kit, error) {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	log := opts.Logger
	if log == nil {
		built, err := NewLogger(cfg.Log, opts.LogWriter)
		if err != nil {
			return nil, err
		}
		log = built
	}

	store := tokens.Default()
	if cfg.TokensFile != "" {
		loaded, err := tokens.LoadFile(cfg.TokensFile)
		if err != nil {
			return nil, err
		}
		store = loaded
	}

	kit := &Kit{
		Config: cfg,
		Logger: log,
		Events: events.NewPublisher(log.With("layer", "events")),
		Tokens: store,
	}

	kit.Store = opts.Store
	if kit.Store == nil {
		opened, err := storage.Open(ctx, storage.Options{Driver: cfg.Storage.Driver, Path: cfg.Storage.Path})
		if err != nil {
			log.Warn(ctx, "mode persistence disabled", "driver", cfg.Storage.Driver, "error", err)
			opened = storage.Unavailable{}
		}
		kit.Store = opened
		kit.ownsStore = true
	}

	preference := opts.Preference
	if preference == nil {
		preference = DefaultPreference(cfg.Preference)
	}
	touch := opts.Touch
	if touch == nil {
		touch = environment.EnvTouch{}
	}

	// The resolver reads the mode through the manager, which is built after
	// it because the manager derives variables through the resolver.
	var modes *mode.Manager
	kit.Resolver = resolver.New(store,
		resolver.ModeFunc(func() tokens.Mode { return modes.Current() }),
		resolver.WithStrict(cfg.Strict),
		resolver.WithLogger(log.With("layer", "domain")),
	)
	modes = mode.NewManager(ctx, mode.Options{
		Store:      kit.Store,
		Key:        cfg.Storage.Key,
		Preference: preference,
		Publisher:  kit.Events,
		Logger:     log.With("layer", "domain"),
		Derive:     kit.Resolver.Variables,
	})
	kit.Modes = modes

	kit.Engine = responsive.NewEngine(store.Breakpoints(),
		responsive.WithLogger(log.With("layer", "domain")),
		responsive.WithPublisher(kit.Events),
		responsive.WithTouchSource(touch),
		responsive.WithDeviceThresholds(cfg.Viewport.Tablet, cfg.Viewport.Desktop),
	)
	kit.Projector = projection.NewProjector(kit.Resolver, kit.Engine)

	log.Debug(ctx, "theme kit ready",
		"mode", modes.Current().String(),
		"breakpoint", kit.Engine.CurrentBreakpoint(),
		"strict", cfg.Strict,
	)
	return kit, nil
}

// DefaultPreference returns the preference chain used when none is supplied:
// the configured preference file, then environment variables, then the
// terminal background.
func DefaultPreference(cfg config.PreferenceConfig) ports.PreferenceSource {
	chain := environment.ChainPreference{}
	if cfg.File != "" {
		chain = append(chain, environment.FilePreference{Path: cfg.File, Debounce: cfg.Debounce})
	}
	return append(chain, environment.EnvPreference{}, environment.TerminalPreference{})
}

// TerminalViewport returns a viewport source for the controlling terminal
// using the configured cell size.
func (k *Kit) TerminalViewport() *environment.TerminalViewport {
	return environment.NewTerminalViewport(k.Config.Viewport.CellWidth, k.Config.Viewport.CellHeight)
}

// Close releases the store when the Kit opened it.
func (k *Kit) Close() error {
	if k == nil || !k.ownsStore || k.Store == nil {
		return nil
	}
	return k.Store.Close()
}

// NewLogger builds the configured logging backend.
func NewLogger(cfg config.LogConfig, w io.Writer) (ports.Logger, error) {
	switch cfg.Backend {
	case "zerolog":
		zl, err := logger.New(logger.Options{
			Level:         cfg.Level,
			HumanReadable: cfg.Format != "json",
			Writer:        w,
		})
		if err != nil {
			return nil, err
		}
		return zl.Port(), nil
	case "", "charm":
		return logging.New(logging.Options{
			Writer:    w,
			Level:     cfg.Level,
			Format:    cfg.Format,
			Component: "themekit",
		})
	default:
		return nil, errors.New("unknown log backend " + cfg.Backend)
	}
}
