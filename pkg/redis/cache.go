package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides typed caching utilities
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

func (c *Cache) key(key string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, key)
}

// Get retrieves a cached value. A miss returns (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.client.Redis().Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	return c.client.Redis().Del(ctx, c.key(key)).Err()
}

// GetOrSet fills dest from cache, or from fn on a miss (storing the result).
// dest must be a pointer to the same type fn produces.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	found, err := c.Get(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	value, err := fn()
	if err != nil {
		return err
	}

	// cache write failures are non-fatal
	_ = c.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Predefined TTLs
const (
	TTLQuote        = 1 * time.Minute  // 현재가 + 일봉 번들
	TTLNews         = 15 * time.Minute // 뉴스 피드
	TTLFundamentals = 6 * time.Hour    // 재무 비율
)

// Common cache key generators
func HistoryKey(symbol string, days int) string {
	return fmt.Sprintf("history:%s:%d", symbol, days)
}

func FundamentalsKey(symbol string) string {
	return fmt.Sprintf("fundamentals:%s", symbol)
}

func NewsKey(category string, query string) string {
	return fmt.Sprintf("news:%s:%s", category, strings.ToLower(strings.ReplaceAll(query, " ", "-")))
}
