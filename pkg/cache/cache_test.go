package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/pkg/cache"
)

type item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func newCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)

	c, err := cache.New(context.Background(), cache.Options{Addr: srv.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.New(ctx, cache.Options{})
	require.NoError(t, err)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.Set(ctx, "k", item{Name: "x"}, time.Minute))

	var got item
	assert.False(t, c.Get(ctx, "k", &got))
	assert.NoError(t, c.Del(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)

	require.NoError(t, c.Set(ctx, "p1", item{Name: "mug", Price: 9.5}, time.Minute))
	assert.True(t, srv.Exists("test:p1"), "keys carry the prefix")

	var got item
	require.True(t, c.Get(ctx, "p1", &got))
	assert.Equal(t, item{Name: "mug", Price: 9.5}, got)

	require.NoError(t, c.Del(ctx, "p1"))
	assert.False(t, c.Get(ctx, "p1", &got))
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)

	require.NoError(t, c.Set(ctx, "p1", item{Name: "mug"}, time.Second))
	srv.FastForward(2 * time.Second)

	var got item
	assert.False(t, c.Get(ctx, "p1", &got))
}

func TestGetUndecodableIsMiss(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)

	require.NoError(t, srv.Set("test:bad", "{not json"))

	var got item
	assert.False(t, c.Get(ctx, "bad", &got))
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := cache.New(context.Background(), cache.Options{Addr: addr})
	assert.Error(t, err)
}
