package tokens

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/credstore"
	"github.com/mastereducationkz/lms-front-sub003/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) credstore.Store {
	t.Helper()
	return credstore.NewFileStore(filepath.Join(t.TempDir(), "auth.json"))
}

func TestManager_SetPairAndRead(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStore(t))

	require.NoError(t, m.SetPair(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", access)

	refresh, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R1", refresh)

	assert.True(t, m.IsAuthenticated(ctx))
}

func TestManager_EmptyStore(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStore(t))

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", access)
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestManager_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	first := NewManager(store)
	require.NoError(t, first.SetPair(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, first.SetUser(ctx, `{"email":"s@edu.kz"}`))

	// A fresh Manager over the same store stands in for a restarted client.
	second := NewManager(store)

	access, err := second.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", access)

	user, err := second.CachedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"email":"s@edu.kz"}`, user)

	assert.True(t, second.IsAuthenticated(ctx))
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	m := NewManager(store)

	require.NoError(t, m.SetPair(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, m.SetUser(ctx, `{"email":"s@edu.kz"}`))

	require.NoError(t, m.Clear(ctx))

	assert.False(t, m.IsAuthenticated(ctx))

	refresh, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", refresh)

	// The store is wiped too, not just the in-memory copy.
	for _, key := range []string{common.AccessTokenKey, common.RefreshTokenKey, common.CurrentUserKey} {
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "", got, key)
	}
}

func TestManager_StaleCachedUserWithoutTokens(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	// A cached profile left behind without any tokens must not resurrect a
	// session.
	require.NoError(t, store.Set(ctx, common.CurrentUserKey, `{"email":"old@edu.kz"}`, time.Hour))

	m := NewManager(store)

	user, err := m.CachedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", user)
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestManager_SetPairReplacesBoth(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStore(t))

	require.NoError(t, m.SetPair(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, m.SetPair(ctx, Pair{AccessToken: "A2", RefreshToken: "R2"}))

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R2", refresh)
}
