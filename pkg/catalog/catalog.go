package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Catalog is the read side of the property catalog.
type Catalog interface {
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// Cache is the subset of the Redis client used by CachedCatalog. *redis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedCatalog reads properties through a Redis cache. Cache failures are logged
// and never fail a request. Only listing records are cached.
type CachedCatalog struct {
	store  storage.CatalogStore
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCatalog creates a CachedCatalog. A nil cache disables caching.
func NewCachedCatalog(store storage.CatalogStore, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{store: store, cache: cache, ttl: ttl, logger: logger}
}

var _ Catalog = (*CachedCatalog)(nil)

func propertyKey(id string) string {
	return fmt.Sprintf("property:%s", id)
}

// GetProperty returns the property from cache, or from the store on a miss.
func (c *CachedCatalog) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	if c.cache != nil {
		data, err := c.cache.Get(ctx, propertyKey(propertyID)).Bytes()
		switch {
		case err == nil:
			var property models.Property
			if err := json.Unmarshal(data, &property); err == nil {
				return &property, nil
			}
			c.logger.Warn("discarding undecodable cached property", zap.String("property_id", propertyID))
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("property cache read failed", zap.String("property_id", propertyID), zap.Error(err))
		}
	}

	property, err := c.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	c.put(ctx, property)
	return property, nil
}

// ListProperties always reads the store.
func (c *CachedCatalog) ListProperties(ctx context.Context) ([]models.Property, error) {
	return c.store.ListProperties(ctx)
}

// CreateProperty stores a new listing and warms the cache with it.
func (c *CachedCatalog) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	created, err := c.store.CreateProperty(ctx, property)
	if err != nil {
		return nil, err
	}
	c.put(ctx, created)
	return created, nil
}

func (c *CachedCatalog) put(ctx context.Context, property *models.Property) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(property)
	if err != nil {
		c.logger.Warn("failed to encode property for cache", zap.String("property_id", property.Id), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, propertyKey(property.Id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("property cache write failed", zap.String("property_id", property.Id), zap.Error(err))
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", addr))
	return rdb, nil
}
