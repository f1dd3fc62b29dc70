package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared redis client. It stays nil when no REDIS_URL is
// configured and every helper degrades to a no-op, so the API runs without
// redis in dev and in tests.
var Client *redis.Client

func Connect(redisURL string) {
	if redisURL == "" {
		log.Println("redis: not configured, leaderboard cache disabled")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid REDIS_URL, cache disabled: %v", err)
		return
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis: ping failed, cache disabled: %v", err)
		return
	}

	Client = client
	log.Println("redis: leaderboard cache enabled")
}

// Get returns the cached value for key, or "" on miss/disabled cache.
func Get(ctx context.Context, key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

func Set(ctx context.Context, key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("redis: set %s failed: %v", key, err)
	}
}

func Delete(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("redis: del failed: %v", err)
	}
}
