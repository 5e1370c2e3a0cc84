package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedBook struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })
	require.NoError(t, rc.Connect(context.Background()))
	return mr, NewRedisCache(rc)
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	var got cachedBook
	hit, err := c.Get(ctx, "book:detail:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "book:detail:1", cachedBook{ID: 1, Title: "Dom Casmurro"}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("book:detail:1"))

	hit, err = c.Get(ctx, "book:detail:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cachedBook{ID: 1, Title: "Dom Casmurro"}, got)

	require.NoError(t, c.Delete(ctx, "book:detail:1"))
	assert.False(t, mr.Exists("book:detail:1"))
}

func TestRedisCache_GetCorruptValue(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("book:detail:9", "{not json"))

	var got cachedBook
	hit, err := c.Get(context.Background(), "book:detail:9", &got)
	assert.False(t, hit)
	assert.ErrorContains(t, err, "book:detail:9")
}

func TestRedisCache_DeletePatternSpansScanBatches(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	for i := range 2*scanBatchSize + 50 {
		require.NoError(t, mr.Set(fmt.Sprintf("book:detail:%d", i), "{}"))
	}
	require.NoError(t, mr.Set("author:detail:1", "{}"))

	require.NoError(t, c.DeletePattern(ctx, "book:detail:*"))

	assert.Equal(t, []string{"author:detail:1"}, mr.Keys())
}

func TestRedisCache_DeletePatternNoMatches(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("author:detail:1", "{}"))

	require.NoError(t, c.DeletePattern(context.Background(), "book:*"))

	assert.Equal(t, []string{"author:detail:1"}, mr.Keys())
}

func TestRedisClient_HealthCheck(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	rc := NewRedisClient(mr.Addr(), "", 0)
	defer rc.Close()
	require.NoError(t, rc.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, rc.HealthCheck(context.Background()))
}
