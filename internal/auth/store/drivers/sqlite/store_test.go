package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/storetest"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newFileStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStoreContract_Memory(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

// The file-backed variant runs the concurrency checks across a real
// connection pool rather than a single pinned connection.
func TestStoreContract_File(t *testing.T) {
	storetest.Run(t, newFileStore)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, _, err := s.SchemaVersion()
	require.NoError(t, err)
	require.Zero(t, v)

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())

	v, dirty, err := s.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)
}
