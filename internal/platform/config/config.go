package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	Addr        string
	PostgresURL string
	Redis       RedisConfig
	// MissingItemsTTL bounds how long missing-item responses are served
	// from cache; ReorderTTL does the same for reorder responses.
	MissingItemsTTL time.Duration
	ReorderTTL      time.Duration
}

// RedisConfig captures Redis connection settings. An empty URL means the
// in-memory response cache is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("DAY0_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:        addr,
		PostgresURL: os.Getenv("DAY0_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("DAY0_REDIS_URL"),
			PoolSize:     envInt("DAY0_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("DAY0_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("DAY0_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("DAY0_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("DAY0_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		MissingItemsTTL: envDuration("DAY0_MISSING_ITEMS_TTL", 2*time.Hour),
		ReorderTTL:      envDuration("DAY0_REORDER_TTL", 6*time.Hour),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
