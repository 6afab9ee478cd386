package cache

import (
	"context"
	"time"
)

const categoryListKey = "categories"

// CategoryTTL bounds staleness of the category reference list. Posts are not
// cached: every read mutates the view counter, so a cached body would always
// be behind.
const CategoryTTL = 10 * time.Minute

// CategoryListKey returns the cache key for the category reference list.
func CategoryListKey() string {
	return categoryListKey
}

// Invalidate removes a key. A nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}
