package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional price-bar store)
	Database DatabaseConfig

	// Redis (optional fetch cache)
	Redis RedisConfig

	// External APIs
	NewsAPI  NewsAPIConfig
	Kite     KiteConfig
	Yahoo    YahooConfig
	Telegram TelegramConfig

	// Market defaults
	Market MarketConfig

	// Strategy YAML (weights, thresholds, watchlist, feeds)
	StrategyPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Tracing
	TracingEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectRetries  int
}

// Enabled reports whether a price-bar store is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// NewsAPIConfig holds newsapi.org configuration
type NewsAPIConfig struct {
	APIKey  string
	BaseURL string
}

// KiteConfig holds Zerodha Kite Connect credentials
type KiteConfig struct {
	APIKey      string
	AccessToken string
}

// Enabled reports whether Kite credentials are present
func (k KiteConfig) Enabled() bool {
	return k.APIKey != "" && k.AccessToken != ""
}

// YahooConfig holds Yahoo Finance endpoints
type YahooConfig struct {
	ChartURL   string
	SummaryURL string
}

// TelegramConfig holds alert bot configuration
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// Enabled reports whether alerts can be sent
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// MarketConfig holds exchange defaults
type MarketConfig struct {
	ExchangeSuffix string // ".NS" for NSE
	HistoryDays    int
	DefaultHorizon int // weeks
	NewsPerSource  int
	FeedRatePerSec float64
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
			ConnectRetries:  getEnvAsInt("DB_CONNECT_RETRIES", 3),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		NewsAPI: NewsAPIConfig{
			APIKey:  getEnv("NEWSAPI_KEY", ""),
			BaseURL: getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
		},

		Kite: KiteConfig{
			APIKey:      getEnv("KITE_API_KEY", ""),
			AccessToken: getEnv("KITE_ACCESS_TOKEN", ""),
		},

		Yahoo: YahooConfig{
			ChartURL:   getEnv("YAHOO_CHART_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			SummaryURL: getEnv("YAHOO_SUMMARY_URL", "https://query2.finance.yahoo.com/v10/finance/quoteSummary"),
		},

		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		},

		Market: MarketConfig{
			ExchangeSuffix: getEnv("MARKET_EXCHANGE_SUFFIX", ".NS"),
			HistoryDays:    getEnvAsInt("MARKET_HISTORY_DAYS", 365),
			DefaultHorizon: getEnvAsInt("MARKET_DEFAULT_HORIZON_WEEKS", 2),
			NewsPerSource:  getEnvAsInt("NEWS_PER_SOURCE", 10),
			FeedRatePerSec: getEnvAsFloat("NEWS_FEED_RATE", 1.0),
			RequestTimeout: getEnvAsDuration("HTTP_TIMEOUT", "10s"),
		},

		StrategyPath: getEnv("STRATEGY_PATH", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		TracingEnabled: getEnvAsBool("TRACING_ENABLED", false),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Market.DefaultHorizon < 1 {
		return fmt.Errorf("MARKET_DEFAULT_HORIZON_WEEKS must be >= 1")
	}

	if c.Market.HistoryDays < 30 {
		return fmt.Errorf("MARKET_HISTORY_DAYS must be >= 30")
	}

	if c.Market.ExchangeSuffix != "" && !strings.HasPrefix(c.Market.ExchangeSuffix, ".") {
		return fmt.Errorf("MARKET_EXCHANGE_SUFFIX must start with '.'")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
