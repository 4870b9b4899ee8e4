package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/service_booking/internal/core/domain"
)

const DefaultCatalogTTL = 5 * time.Minute

func catalogKey(shopID string) string {
	return fmt.Sprintf("catalog:%s", shopID)
}

// CatalogCache stores normalized catalogs as JSON. Catalogs are read-only
// once loaded, so sharing them across sessions is safe.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context, shopID string) (*domain.Catalog, bool, error) {
	data, err := c.client.Get(ctx, catalogKey(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, false, fmt.Errorf("corrupt cached catalog for %s: %w", shopID, err)
	}
	return &catalog, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, catalog *domain.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(catalog.Shop.ID), data, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context, shopID string) error {
	return c.client.Del(ctx, catalogKey(shopID)).Err()
}
