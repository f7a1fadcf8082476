package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-keystone/pkg/logger"
)

// localBackfillTTL L2 命中后回写 L1 的 TTL，防止 L1 脏数据太久
const localBackfillTTL = time.Minute

// MultiLevelCache 实现多级缓存 (L1: Memory, L2: Redis)
type MultiLevelCache struct {
	local  Cache
	remote Cache
}

func NewMultiLevelCache(local, remote Cache) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
	}
}

func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// L1 只保留一半 TTL；永不过期的 key 在 L1 上也用回写 TTL，以 L2 为准
	localTTL := ttl / 2
	if ttl <= 0 {
		localTTL = localBackfillTTL
	}
	if err := m.local.Set(ctx, key, value, localTTL); err != nil {
		logger.Warn("L1 cache set failed", zap.String("key", key), zap.Error(err))
	}
	return m.remote.Set(ctx, key, value, ttl)
}

func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	// 1. 查 L1
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil
	}

	// 2. 查 L2，命中后回写 L1
	if err := m.remote.Get(ctx, key, target); err != nil {
		return err
	}
	_ = m.local.Set(ctx, key, target, localBackfillTTL)
	return nil
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}
