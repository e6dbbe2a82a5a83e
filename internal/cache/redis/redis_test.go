package redis

import (
	"context"
	"testing"
	"time"

	md "github.com/JMURv/iptv-gateway/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	return &Cache{cli: redis.NewClient(&redis.Options{Addr: srv.Addr()})}, srv
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	usr := &md.User{
		ID:             uuid.New(),
		Username:       "alice",
		MaxConnections: 3,
		IsActive:       true,
		Role:           md.RoleUser,
	}

	c.Set(ctx, time.Minute, "user:1", usr)

	got := &md.User{}
	require.NoError(t, c.GetToStruct(ctx, "user:1", got))
	assert.Equal(t, usr.ID, got.ID)
	assert.Equal(t, usr.Username, got.Username)
	assert.Equal(t, usr.MaxConnections, got.MaxConnections)
	assert.True(t, got.IsActive)
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got := &md.User{}
	assert.Error(t, c.GetToStruct(context.Background(), "user:missing", got))
}

func TestCache_Expiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, time.Minute, "user:1", &md.User{Username: "alice"})
	srv.FastForward(2 * time.Minute)

	got := &md.User{}
	assert.Error(t, c.GetToStruct(ctx, "user:1", got))
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, time.Minute, "user:1", &md.User{Username: "alice"})
	c.Delete(ctx, "user:1")

	got := &md.User{}
	assert.Error(t, c.GetToStruct(ctx, "user:1", got))
}

func TestCache_InvalidateKeysByPattern(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, time.Minute, "user:1", &md.User{Username: "alice"})
	c.Set(ctx, time.Minute, "users-page-1-size-40", &md.User{Username: "bob"})
	c.Set(ctx, time.Minute, "session:1", &md.Session{Fingerprint: "fp"})

	c.InvalidateKeysByPattern(ctx, "user*")

	got := &md.User{}
	assert.Error(t, c.GetToStruct(ctx, "user:1", got))
	assert.Error(t, c.GetToStruct(ctx, "users-page-1-size-40", got))

	// Keys outside the pattern survive.
	s := &md.Session{}
	require.NoError(t, c.GetToStruct(ctx, "session:1", s))
	assert.Equal(t, "fp", s.Fingerprint)
}
