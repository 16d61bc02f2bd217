package blob_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/uniform-stock/internal/infrastructure/blob"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ledger", []byte(`{"products":{}}`)))

	data, ok, err := store.Load(ctx, "ledger")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"products":{}}`), data)
}

func TestFileStore_AbsentKey(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, ok, err := store.Load(context.Background(), "missing")
	require.NoError(t, err, "an absent key is not an error")
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFileStore_OverwriteKeepsLatest(t *testing.T) {
	dir := t.TempDir()
	store, err := blob.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ledger", []byte("v1")))
	require.NoError(t, store.Save(ctx, "ledger", []byte("v2")))

	data, ok, err := store.Load(ctx, "ledger")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), data)

	// The temp file used for the atomic write never survives.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", filepath.Base(entries[0].Name()))
}

func TestFileStore_CreatesBaseDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := blob.NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
