package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "auth.json"))
}

func TestFileStore_SetGet(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Hour))

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A1", got)
}

func TestFileStore_MissingFileBehavesEmpty(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_ExpiredBehavesLikeMissing(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Minute))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFileStore_DeleteAndClear(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Hour))
	require.NoError(t, store.Set(ctx, "refresh_token", "R1", time.Hour))

	require.NoError(t, store.Delete(ctx, "access_token"))
	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, store.Clear(ctx))

	// Clearing the last entry removes the file itself.
	_, statErr := os.Stat(store.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_FilePermissions(t *testing.T) {
	store := newFileStore(t)

	require.NoError(t, store.Set(context.Background(), "access_token", "A1", time.Hour))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
