package credstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "credentials.db")
	store, err := OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dsn
}

func TestSQLiteStore_SetGet(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Hour))

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A1", got)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store, _ := newSQLiteStore(t)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSQLiteStore_SetReplaces(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "old", time.Hour))
	require.NoError(t, store.Set(ctx, "access_token", "new", time.Hour))

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestSQLiteStore_ExpiredBehavesLikeMissing(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Minute))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// The expired row is gone from the table, not just filtered.
	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSQLiteStore_SetManyWritesAll(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	entries := []Entry{
		NewEntry("access_token", "A1", time.Hour),
		NewEntry("refresh_token", "R1", 24*time.Hour),
	}
	require.NoError(t, store.SetMany(ctx, entries))

	for _, e := range entries {
		got, err := store.Get(ctx, e.Key)
		require.NoError(t, err)
		assert.Equal(t, e.Value, got)
	}
}

func TestSQLiteStore_DeleteMissingIsNotAnError(t *testing.T) {
	store, _ := newSQLiteStore(t)
	require.NoError(t, store.Delete(context.Background(), "nope"))
}

func TestSQLiteStore_EntriesOmitExpired(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "live", "yes", time.Hour))
	require.NoError(t, store.Set(ctx, "dead", "no", time.Minute))

	store.now = func() time.Time { return time.Now().Add(30 * time.Minute) }

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "live", entries[0].Key)
}

func TestSQLiteStore_Clear(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "access_token", "A1", time.Hour))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "credentials.db")

	store, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "refresh_token", "R1", time.Hour))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R1", got)
}
