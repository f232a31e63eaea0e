package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"farmhub/internal/models"
)

const topProductsKey = "catalog:top_products"

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

func (r *RedisCache) GetTopProducts(ctx context.Context) ([]models.RankedProduct, error) {
	data, err := r.client.Get(ctx, topProductsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []models.RankedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal top products failed: %w", err)
	}
	return products, nil
}

func (r *RedisCache) SetTopProducts(ctx context.Context, products []models.RankedProduct) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal top products failed: %w", err)
	}

	// Jitter spreads out simultaneous expiry across instances.
	ttl := r.baseTTL + time.Duration(rand.Intn(60))*time.Second
	if err := r.client.Set(ctx, topProductsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) InvalidateTopProducts(ctx context.Context) error {
	if err := r.client.Del(ctx, topProductsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
