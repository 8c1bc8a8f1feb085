// Package cache 快取已生成的計畫。引擎輸出是確定性的，相同請求可以直接重用結果。
package cache

import (
	"context"
	"fmt"

	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Cache 計畫快取；未命中時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New 依設定建立快取；停用時回傳 Disabled
func New(cfg *config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return Disabled{}, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedis(cfg)
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	}
	common.LogError("Unknown cache backend", zap.String("backend", cfg.Backend))
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// Disabled 不儲存任何內容的快取
type Disabled struct{}

func (Disabled) Get(context.Context, string) ([]byte, error) {
	return nil, common.ErrCacheDisabled
}

func (Disabled) Set(context.Context, string, []byte) error {
	return nil
}

func (Disabled) Close() error {
	return nil
}
