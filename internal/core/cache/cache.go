package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-suggester/internal/infrastructure/config"
)

// ErrMiss 快取中沒有此鍵或已過期
var ErrMiss = errors.New("cache miss")

// Cache 推薦結果快取
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定建立快取；未啟用時回傳 nil
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return NewManager(cfg), nil
	case config.CacheBackendRedis:
		rc, err := NewRedisCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
