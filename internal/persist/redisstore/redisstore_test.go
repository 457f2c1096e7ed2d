package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lair/internal/persist"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err, "failed to create redis store")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestNew_RequiresAddr(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNew_UnreachableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), Options{Addr: addr})
	assert.ErrorContains(t, err, "ping redis")
}

func TestGet_MissingKey(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), persist.Key)
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestSetGetDelete(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, persist.Key, []byte(`{"theme":"light"}`)))

	got, err := s.Get(ctx, persist.Key)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, string(got))

	raw, err := mr.Get("lair:dragon-app-state")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, raw)
	assert.Zero(t, mr.TTL("lair:dragon-app-state"))

	require.NoError(t, s.Delete(ctx, persist.Key))
	assert.False(t, mr.Exists("lair:dragon-app-state"))
	require.NoError(t, s.Delete(ctx, persist.Key), "deleting an absent key is not an error")
}

func TestCustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := New(context.Background(), Options{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("test:k"))
}

func TestAdapterOverRedis(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, mr.Set("lair:"+persist.Key, `{"theme":"dark","favorites":"not-an-array","user":{"stats":{"dragonsViewed":5}}}`))

	a := persist.NewAdapter(s)
	defer func() { _ = a.Close(context.Background()) }()

	snap, found := a.Load(context.Background())
	require.True(t, found)
	assert.Equal(t, "dark", snap.Theme)
	assert.Equal(t, []string{}, snap.Favorites)
	assert.Equal(t, 5, snap.User.Stats.DragonsViewed)
}
