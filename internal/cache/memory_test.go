package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmhub/internal/models"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, err := c.GetTopProducts(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	ranked := []models.RankedProduct{{Name: "seeds", AvgRating: 4.2}}
	require.NoError(t, c.SetTopProducts(ctx, ranked))

	got, err := c.GetTopProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ranked, got)

	require.NoError(t, c.InvalidateTopProducts(ctx))
	_, err = c.GetTopProducts(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.SetTopProducts(ctx, []models.RankedProduct{{Name: "seeds"}}))
	time.Sleep(20 * time.Millisecond)

	_, err := c.GetTopProducts(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
