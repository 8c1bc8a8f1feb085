package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "mealplan:"

// Redis 以 Redis 儲存的快取，供多個實例共用
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis 創建 Redis 快取並測試連接
func NewRedis(cfg *config.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis cache connected")
	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Get 獲取緩存
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis", key)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 設置緩存
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉連接
func (r *Redis) Close() error {
	return r.client.Close()
}
