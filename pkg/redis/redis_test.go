package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(Disabled(), "test")

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(context.Background(), YahooRateLimit)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, YahooRateLimit.Limit, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), NewsAPIRateLimit))
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(Disabled(), "test")
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestCache_GetOrSetDisabledCallsLoader(t *testing.T) {
	cache := NewCache(Disabled(), "test")

	type payload struct {
		Price float64 `json:"price"`
	}

	calls := 0
	var got payload
	err := cache.GetOrSet(context.Background(), HistoryKey("TCS.NS", 365), &got, TTLQuote, func() (interface{}, error) {
		calls++
		return payload{Price: 3520.5}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3520.5, got.Price)

	loadErr := errors.New("upstream down")
	err = cache.GetOrSet(context.Background(), "k", &got, TTLQuote, func() (interface{}, error) {
		return nil, loadErr
	})
	assert.ErrorIs(t, err, loadErr)
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		fn       func() string
		expected string
	}{
		{"HistoryKey", func() string { return HistoryKey("RELIANCE.NS", 365) }, "history:RELIANCE.NS:365"},
		{"FundamentalsKey", func() string { return FundamentalsKey("INFY.NS") }, "fundamentals:INFY.NS"},
		{"NewsKey", func() string { return NewsKey("company", "Tata Motors") }, "news:company:tata-motors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fn())
		})
	}
}
