package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New("redis://"+mr.Addr(), ttl, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "/api/lessons/l1")
	require.False(t, ok)

	c.Set(ctx, "/api/lessons/l1", []byte(`{"id":"l1"}`))
	got, ok := c.Get(ctx, "/api/lessons/l1")
	require.True(t, ok)
	require.JSONEq(t, `{"id":"l1"}`, string(got))
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Invalidate(ctx, "a", "b")

	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	_, ok = c.Get(ctx, "b")
	require.False(t, ok)
}

func TestNilReceiverIsSafe(t *testing.T) {
	var c *Redis
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
	c.Set(ctx, "k", []byte("v"))
	c.Invalidate(ctx, "k")
	require.NoError(t, c.Close())
}

func TestBadURL(t *testing.T) {
	_, err := New("not a url", time.Minute, zerolog.Nop())
	require.Error(t, err)
}
