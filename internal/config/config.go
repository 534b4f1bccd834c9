package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL    string
	RedisAddr      string
	HTTPListenAddr string
	ServiceName    string
	LogLevel       string
	// JWTSecret signs admin and developer bearer tokens. Required for any
	// service that validates or issues tokens.
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
	// APIKeyCacheTTL bounds how long a cached API key projection is trusted
	// before the store is consulted again.
	APIKeyCacheTTL  time.Duration
	AccountCacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8080"),
		ServiceName:     getEnv("SERVICE_NAME", "platform-api"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "roomverse-platform"),
		TokenTTL:        getDuration("TOKEN_TTL_SECONDS", 24*time.Hour),
		APIKeyCacheTTL:  getDuration("API_KEY_CACHE_TTL_SECONDS", 60*time.Second),
		AccountCacheTTL: getDuration("ACCOUNT_CACHE_TTL_SECONDS", 60*time.Second),
	}

	return cfg, nil
}

// Validate checks that the config carries everything the named service needs.
func (c *Config) Validate(service string) error {
	switch service {
	case "platform-api":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}
	case "worker":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
