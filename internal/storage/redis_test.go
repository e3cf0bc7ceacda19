package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheMarkers(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	key := cache.CheckoutMarkerKey("order-1", "key-1")
	assert.Equal(t, "checkout:order-1:key-1", key)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))

	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	// markers expire; the payments table remains authoritative
	mr.FastForward(2 * time.Hour)
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
