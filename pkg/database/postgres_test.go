package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/pkg/config"
)

func TestNew_InvalidURL(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{URL: "://not-a-url"}}

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewAndHealthCheck(t *testing.T) {
	if testing.Short() || os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := db.HealthCheck(ctx)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Greater(t, status.Stats.MaxConns, int32(0))
}
