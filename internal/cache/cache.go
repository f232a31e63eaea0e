package cache

import (
	"context"
	"errors"

	"farmhub/internal/models"
)

// CatalogCache holds the computed top-products ranking.
type CatalogCache interface {
	GetTopProducts(ctx context.Context) ([]models.RankedProduct, error)
	SetTopProducts(ctx context.Context, products []models.RankedProduct) error
	InvalidateTopProducts(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
