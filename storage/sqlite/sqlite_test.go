package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/docseek/storage"
	"github.com/poiesic/docseek/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storagetest.RunKeyValueStoreTests(t, func(t *testing.T) storage.KeyValueStore {
		s, err := Open(context.Background(), MemoryPath)
		require.NoError(t, err)
		return s
	})
}

func TestStore_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := Open(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "docseek.recent-queries", []byte(`["quick"]`)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	value, err := s.Get(ctx, "docseek.recent-queries")
	require.NoError(t, err)
	assert.Equal(t, `["quick"]`, string(value))
}

func TestStore_UpsertKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, "k", []byte(v)))
	}

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_CloseTwice(t *testing.T) {
	s, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
