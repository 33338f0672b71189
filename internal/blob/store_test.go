package blob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "encodings"))
	require.NoError(t, err)
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	embedding := domain.Embedding{-0.123456789, 0.0, 1.5, 3.14159265358979, -1e-12}
	require.NoError(t, store.Put("a1b2c3", embedding))

	got, err := store.Get("a1b2c3")
	require.NoError(t, err)
	// Binary codec is exact, not approximate
	assert.Equal(t, embedding, got)
}

func TestStore_PutOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put("key", domain.Embedding{1, 2, 3}))
	require.NoError(t, store.Put("key", domain.Embedding{4, 5}))

	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, domain.Embedding{4, 5}, got)
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_GetCorrupt(t *testing.T) {
	store := newTestStore(t)

	// Truncated blob: not a whole number of float64 words
	path := filepath.Join(store.Root(), "bad"+fileExt)
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := store.Get("bad")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_PutLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put("key", domain.Embedding{1}))

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "key"+fileExt, entries[0].Name())
}

func TestStore_Remove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put("key", domain.Embedding{1}))
	require.NoError(t, store.Remove("key"))

	_, err := store.Get("key")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Removing an absent blob is fine
	assert.NoError(t, store.Remove("key"))
}

func TestNewStore_CreatesDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "encodings")
	_, err := NewStore(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
