package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore persists values in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures its schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewPersistenceUnavailableError("open", path, fmt.Errorf("create db directory: %w", err))
	}
	return openSQLite(ctx, path)
}

// OpenSQLiteInMemory opens a private in-memory database.
func OpenSQLiteInMemory(ctx context.Context) (*SQLiteStore, error) {
	return openSQLite(ctx, ":memory:")
}

func openSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.NewPersistenceUnavailableError("open", dsn, fmt.Errorf("open database: %w", err))
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, apperrors.NewPersistenceUnavailableError("open", dsn, fmt.Errorf("init schema: %w", err))
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements ports.KeyValueStore.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewPersistenceUnavailableError("get", key, err)
	}
	return value, true, nil
}

// Set implements ports.KeyValueStore.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return apperrors.NewPersistenceUnavailableError("set", key, err)
	}
	return nil
}

// Delete implements ports.KeyValueStore.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return apperrors.NewPersistenceUnavailableError("delete", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
