package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/themekit/internal/responsive"
	"github.com/alexisbeaulieu97/themekit/internal/storage"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. THEMEKIT_STORAGE_DRIVER.
const EnvPrefix = "THEMEKIT"

// Config is the runtime configuration of themekit.
type Config struct {
	TokensFile string           `mapstructure:"tokens_file"`
	Strict     bool             `mapstructure:"strict"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Preference PreferenceConfig `mapstructure:"preference"`
	Viewport   ViewportConfig   `mapstructure:"viewport"`
}

// StorageConfig selects where the explicit mode choice is persisted.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"storage_driver"`
	Path   string `mapstructure:"path"`
	Key    string `mapstructure:"key" validate:"required"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level   string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format  string `mapstructure:"format" validate:"oneof=text json logfmt"`
	Backend string `mapstructure:"backend" validate:"oneof=charm zerolog"`
}

// PreferenceConfig configures OS color-scheme detection.
type PreferenceConfig struct {
	// File, when set, is watched for "light" or "dark".
	File     string        `mapstructure:"file"`
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
}

// ViewportConfig configures viewport measurement and device classes.
type ViewportConfig struct {
	CellWidth  int    `mapstructure:"cell_width" validate:"gte=1"`
	CellHeight int    `mapstructure:"cell_height" validate:"gte=1"`
	Tablet     string `mapstructure:"tablet" validate:"breakpoint_name"`
	Desktop    string `mapstructure:"desktop" validate:"breakpoint_name"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: storage.DriverFile, Key: storage.DefaultKey},
		Log:     LogConfig{Level: "info", Format: "text", Backend: "charm"},
		Preference: PreferenceConfig{
			Debounce: 100 * time.Millisecond,
		},
		Viewport: ViewportConfig{
			CellWidth:  8,
			CellHeight: 16,
			Tablet:     responsive.DefaultTabletBreakpoint,
			Desktop:    responsive.DefaultDesktopBreakpoint,
		},
	}
}

// DefaultPath returns the config file searched when none is given.
func DefaultPath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from path, or from DefaultPath when path is empty,
// and applies THEMEKIT_* environment overrides. A missing default file is not
// an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, apperrors.NewParseError(path, 0, err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("tokens_file", d.TokensFile)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.backend", d.Log.Backend)
	v.SetDefault("preference.file", d.Preference.File)
	v.SetDefault("preference.debounce", d.Preference.Debounce)
	v.SetDefault("viewport.cell_width", d.Viewport.CellWidth)
	v.SetDefault("viewport.cell_height", d.Viewport.CellHeight)
	v.SetDefault("viewport.tablet", d.Viewport.Tablet)
	v.SetDefault("viewport.desktop", d.Viewport.Desktop)
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
		return apperrors.NewValidationError(field, fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), err)
	}
	return apperrors.NewValidationError("config", err.Error(), err)
}
