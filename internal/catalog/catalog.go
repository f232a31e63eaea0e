// Package catalog serves read-mostly product queries: category
// listings with a brand facet, free-text search, and a rating-ranked
// top-products list cached in redis.
package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"farmhub/internal/cache"
	"farmhub/internal/models"
)

const topProductsLimit = 8

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category, sortBy string) ([]models.ProductSummary, error)
	DistinctBrands(ctx context.Context, category string) ([]string, error)
	Search(ctx context.Context, term, sortBy string) ([]models.ProductSummary, error)
	TopRated(ctx context.Context, limit int64) ([]models.RankedProduct, error)
}

type Service struct {
	products ProductStore
	cache    cache.CatalogCache
	sfg      singleflight.Group // collapses concurrent ranking recomputes
}

func NewService(products ProductStore, catalogCache cache.CatalogCache) *Service {
	return &Service{products: products, cache: catalogCache}
}

// CategoryListing bundles the products of a category with its brand
// facet.
type CategoryListing struct {
	Products []models.ProductSummary `json:"products"`
	Brands   []string                `json:"brands"`
}

func (s *Service) ListByCategory(ctx context.Context, category, sortBy string) (*CategoryListing, error) {
	products, err := s.products.ListByCategory(ctx, category, sortBy)
	if err != nil {
		return nil, err
	}
	brands, err := s.products.DistinctBrands(ctx, category)
	if err != nil {
		return nil, err
	}
	return &CategoryListing{Products: products, Brands: brands}, nil
}

func (s *Service) Search(ctx context.Context, term, sortBy string) ([]models.ProductSummary, error) {
	return s.products.Search(ctx, term, sortBy)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

// Display returns a product with the viewing user's own review sorted
// first. viewer may be nil for anonymous requests.
func (s *Service) Display(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		sort.SliceStable(product.Reviews, func(i, j int) bool {
			return product.Reviews[i].User == *viewer && product.Reviews[j].User != *viewer
		})
	}
	return product, nil
}

// TopProducts returns the rating-ranked list, served from cache when
// possible. Recomputation is collapsed behind singleflight so a cold
// cache does not fan out into parallel aggregations.
func (s *Service) TopProducts(ctx context.Context) ([]models.RankedProduct, error) {
	v, err, _ := s.sfg.Do("top_products", func() (interface{}, error) {
		products, err := s.cache.GetTopProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		products, err = s.products.TopRated(ctx, topProductsLimit)
		if err != nil {
			return nil, err
		}

		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.cache.SetTopProducts(cacheCtx, products); err != nil {
				log.Printf("cache set error: %v", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.RankedProduct), nil
}
