package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, DefaultKey, "dark"))
	value, found, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "dark", value)

	require.NoError(t, store.Set(ctx, DefaultKey, "light"))
	value, _, err = store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, "light", value)

	require.NoError(t, store.Delete(ctx, DefaultKey))
	require.NoError(t, store.Delete(ctx, DefaultKey))
	_, found, err = store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	store, err := OpenSQLiteInMemory(context.Background())
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, DefaultKey, "dark"))

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	second, err := NewFileStore(path)
	require.NoError(t, err)
	value, found, err := second.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "dark", value)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, DefaultKey, "dark"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	value, found, err := second.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "dark", value)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), DefaultKey)
	require.ErrorIs(t, err, apperrors.ErrPersistenceUnavailable)
}

func TestUnavailableStore(t *testing.T) {
	ctx := context.Background()
	store := Unavailable{}

	_, _, err := store.Get(ctx, DefaultKey)
	require.ErrorIs(t, err, apperrors.ErrPersistenceUnavailable)
	require.ErrorIs(t, store.Set(ctx, DefaultKey, "dark"), apperrors.ErrPersistenceUnavailable)
	require.ErrorIs(t, store.Delete(ctx, DefaultKey), apperrors.ErrPersistenceUnavailable)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, Options{Driver: DriverFile, Path: filepath.Join(dir, "state.json")})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, store)

	store, err = Open(ctx, Options{Driver: "SQLite", Path: filepath.Join(dir, "state.db")})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	store, err = Open(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, Options{Driver: DriverNone})
	require.NoError(t, err)
	require.IsType(t, Unavailable{}, store)

	_, err = Open(ctx, Options{Driver: "redis"})
	require.Error(t, err)
}
