package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_FillsAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			fetchCalls++
			*dest = []string{"Technology", "Travel"}
			return nil
		}
	}

	var got []string
	require.NoError(t, Aside(ctx, "categories", &got, time.Minute, fetch(&got)))
	assert.Equal(t, []string{"Technology", "Travel"}, got)
	assert.Equal(t, 1, fetchCalls)

	// Second call must be served from the cache.
	var again []string
	require.NoError(t, Aside(ctx, "categories", &again, time.Minute, fetch(&again)))
	assert.Equal(t, got, again)
	assert.Equal(t, 1, fetchCalls)
}

func TestAside_RefetchesAfterInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	var got string
	fetch := func() error {
		fetchCalls++
		got = "value"
		return nil
	}

	require.NoError(t, Aside(ctx, CategoryListKey(), &got, time.Minute, fetch))
	Invalidate(ctx, CategoryListKey())
	require.NoError(t, Aside(ctx, CategoryListKey(), &got, time.Minute, fetch))
	assert.Equal(t, 2, fetchCalls)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var got int
	err := Aside(ctx, "anything", &got, time.Minute, func() error {
		got = 42
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, got)
}
