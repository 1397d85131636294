package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const (
	SitemapCacheKey = "merikahani:seo:sitemap"
	RSSCacheKey     = "merikahani:seo:rss"

	SEOCacheTTL = 10 * time.Minute
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

func CacheGet(key string) (string, bool) {
	if Redis == nil {
		return "", false
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func CacheSet(key string, value string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(Ctx, key, value, ttl).Err()
}

// KeyValueCache adapts the package-level cache helpers to the handler
// cache interface.
type KeyValueCache struct{}

func (KeyValueCache) Get(key string) (string, bool) {
	return CacheGet(key)
}

func (KeyValueCache) Set(key, value string, ttl time.Duration) error {
	return CacheSet(key, value, ttl)
}
