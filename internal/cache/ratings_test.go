package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFormat(t *testing.T) {
	assert.Equal(t, "rating:product:42", Key(42))
	assert.Equal(t, "rating:product:0", Key(0))
}

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c := NewRatingCache("", nil)
	assert.False(t, c.Enabled())

	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)

	// Writes against a disabled cache must be harmless no-ops.
	c.Set(context.Background(), 1, RatingSummary{Avg: 4.5, Count: 2})
	c.Invalidate(context.Background(), 1)
	assert.NoError(t, c.Close())

	_, ok = c.Get(context.Background(), 1)
	assert.False(t, ok)
}
