// Package cache provides an optional redis read-through cache for the
// catalog. Admin mutations invalidate the affected keys explicitly; the
// cache is never authoritative.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/models"
)

const (
	keyCategories = "catalog:categories"

	defaultTTL = 5 * time.Minute
)

func keyProducts(categoryID int64) string {
	return fmt.Sprintf("catalog:products:%d", categoryID)
}

func keyProduct(productID int64) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

// Catalog caches category and product reads in redis.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

// Config holds redis connection settings for the catalog cache.
type Config struct {
	Addr     string        `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string        `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" envconfig:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" envconfig:"REDIS_TTL"`
}

// New connects to redis and verifies connectivity. An empty addr means the
// cache is disabled; callers receive nil and must tolerate it.
func New(ctx context.Context, cfg Config) (*Catalog, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	logger.Cache.Info("cache connected",
		slog.String("event", "cache.connect"),
		slog.String("addr", cfg.Addr),
		slog.Duration("ttl", ttl),
	)
	return &Catalog{rdb: rdb, ttl: ttl}, nil
}

// Close releases the redis connection.
func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Catalog) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx, "cache", "cache.get.fail",
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn(ctx, "cache", "cache.decode.fail",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return false
	}
	return true
}

func (c *Catalog) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "cache", "cache.set.fail",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

func (c *Catalog) drop(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx, "cache", "cache.drop.fail",
			slog.String("err", err.Error()),
		)
	}
}

// Categories returns the cached category list, if present.
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, bool) {
	if c == nil {
		return nil, false
	}
	var categories []models.Category
	ok := c.get(ctx, keyCategories, &categories)
	return categories, ok
}

// StoreCategories caches a freshly loaded category list.
func (c *Catalog) StoreCategories(ctx context.Context, categories []models.Category) {
	if c == nil {
		return
	}
	c.set(ctx, keyCategories, categories)
}

// Products returns cached products of a category, if present.
func (c *Catalog) Products(ctx context.Context, categoryID int64) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	var products []models.Product
	ok := c.get(ctx, keyProducts(categoryID), &products)
	return products, ok
}

// StoreProducts caches a category's product list.
func (c *Catalog) StoreProducts(ctx context.Context, categoryID int64, products []models.Product) {
	if c == nil {
		return
	}
	c.set(ctx, keyProducts(categoryID), products)
}

// Product returns a cached product card, if present.
func (c *Catalog) Product(ctx context.Context, productID int64) (models.Product, bool) {
	if c == nil {
		return models.Product{}, false
	}
	var product models.Product
	ok := c.get(ctx, keyProduct(productID), &product)
	return product, ok
}

// StoreProduct caches a single product.
func (c *Catalog) StoreProduct(ctx context.Context, product models.Product) {
	if c == nil {
		return
	}
	c.set(ctx, keyProduct(product.ID), product)
}

// InvalidateCategories drops the category list after an admin mutation.
func (c *Catalog) InvalidateCategories(ctx context.Context) {
	if c == nil {
		return
	}
	c.drop(ctx, keyCategories)
}

// InvalidateProducts drops a category's product list after an admin mutation.
func (c *Catalog) InvalidateProducts(ctx context.Context, categoryID int64) {
	if c == nil {
		return
	}
	c.drop(ctx, keyProducts(categoryID))
}
