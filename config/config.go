package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Feed     FeedConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type FeedConfig struct {
	DefaultLimit      int
	MaxLimit          int
	FacetCacheTTL     time.Duration
	FacetWarmInterval time.Duration
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			Issuer: getEnv("JWT_ISSUER", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Feed: FeedConfig{
			DefaultLimit:      getEnvAsInt("FEED_DEFAULT_LIMIT", 20),
			MaxLimit:          getEnvAsInt("FEED_MAX_LIMIT", 100),
			FacetCacheTTL:     time.Duration(getEnvAsInt("FACET_CACHE_TTL_SECONDS", 300)) * time.Second,
			FacetWarmInterval: time.Duration(getEnvAsInt("FACET_WARM_INTERVAL_SECONDS", 300)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
