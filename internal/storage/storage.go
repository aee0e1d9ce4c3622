// Package storage provides the durable key-value stores used to persist the
// explicit theme choice.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// DefaultKey is the fixed identifier under which the explicit mode is stored.
const DefaultKey = "themekit.mode"

// Supported drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Drivers lists the accepted driver names.
func Drivers() []string {
	return []string{DriverFile, DriverSQLite, DriverMemory, DriverNone}
}

// Options selects and configures a store.
type Options struct {
	Driver string
	Path   string
}

// Store is a KeyValueStore that may hold resources.
type Store interface {
	ports.KeyValueStore
	Close() error
}

// Open returns the store selected by opts.Driver. File and SQLite stores
// default their path under the user config directory.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverFile:
		path, err := resolvePath(opts.Path, "state.json")
		if err != nil {
			return nil, err
		}
		return NewFileStore(path)
	case DriverSQLite:
		path, err := resolvePath(opts.Path, "state.db")
		if err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, path)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverNone:
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// DefaultDir returns the directory used for state files.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, "themekit"), nil
}

func resolvePath(path, name string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return path, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
