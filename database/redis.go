package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"devmood-server/config"
)

var redisClient *redis.Client

// InitializeRedis connects the optional facet cache. When REDIS_ADDR is not
// configured the service runs without a cache and reads facets straight from
// Postgres.
func InitializeRedis() error {
	addr := config.AppConfig.Redis.Addr
	if addr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, facet caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.AppConfig.Redis.Password,
		DB:       0, // use default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Println("✅ Successfully connected to redis")
	return nil
}

// GetRedis returns the shared redis client, or nil when caching is disabled
func GetRedis() *redis.Client {
	return redisClient
}
