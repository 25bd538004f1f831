package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"reservekit/config"
)

var (
	// CacheClient is the generic cache client (catalog reads).
	CacheClient *redis.Client
	// RateLimitClient is the dedicated client for rate-limit counters.
	RateLimitClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitRateLimitCache initializes the Redis client for rate-limit counters.
func InitRateLimitCache() {
	RateLimitClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRateDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RateLimitClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (RateLimit): %v", err)
	}
}

// GetRateLimitClient returns the Redis client for rate-limit counters.
func GetRateLimitClient() *redis.Client {
	if RateLimitClient == nil {
		InitRateLimitCache()
	}
	return RateLimitClient
}
