package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/go-redis/redis/v8"
)

// Client is a read-through cache for listing documents. Every mutation
// path invalidates; a stale entry can only serve reads, never feed a
// stock decision.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db, ttlSeconds int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func listingKey(family, id string) string {
	return fmt.Sprintf("listing:%s:%s", family, id)
}

// GetListing returns the cached listing, or (nil, false) on a miss.
// Cache failures degrade to a miss.
func (c *Client) GetListing(ctx context.Context, family, id string) (*models.Listing, bool) {
	val, err := c.rdb.Get(ctx, listingKey(family, id)).Result()
	if err != nil {
		util.CacheMissesTotal.Inc()
		return nil, false
	}

	var listing models.Listing
	if err := json.Unmarshal([]byte(val), &listing); err != nil {
		util.CacheMissesTotal.Inc()
		return nil, false
	}

	util.CacheHitsTotal.Inc()
	return &listing, true
}

// SetListing caches a listing with the configured TTL
func (c *Client) SetListing(ctx context.Context, family string, listing *models.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	return c.rdb.Set(ctx, listingKey(family, listing.ID), data, c.ttl).Err()
}

// InvalidateListing drops a listing from the cache
func (c *Client) InvalidateListing(ctx context.Context, family, id string) error {
	return c.rdb.Del(ctx, listingKey(family, id)).Err()
}
