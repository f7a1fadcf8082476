// Package bootstrap 按配置组装各个组件，wallet-server 和 wallet-cli 共用
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wallet-keystone/internal/device/simulator"
	"wallet-keystone/internal/keystone"
	"wallet-keystone/internal/notify"
	"wallet-keystone/internal/recovery"
	"wallet-keystone/internal/service/mq"
	"wallet-keystone/internal/service/wallet"
	"wallet-keystone/pkg/cache"
	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/database"
	"wallet-keystone/pkg/hdpath"
	"wallet-keystone/pkg/logger"
)

type Components struct {
	Redis    *redis.Client // redis.enabled=false 时为 nil
	Cache    cache.Cache
	Producer mq.Producer // 未配置消息队列时为 nil
	Device   *simulator.Device
	Wallet   *wallet.Service
	Keystone *keystone.Service
	Recovery *recovery.Service
}

// Build 组装组件
// 1. 连接 Redis (可选)
// 2. 选择存储
// 3. 选择消息队列
// 4. 构造模拟设备、钱包后端和业务服务
// 5. 把模拟设备配置的账户登记到钱包索引
func Build(ctx context.Context, cfg config.Config) (*Components, error) {
	c := &Components{}

	if cfg.Redis.Enabled {
		rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		c.Redis = rdb
	}

	store, err := newCache(cfg.Keystone.Storage, c.Redis)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Cache = store

	c.Producer = newProducer(cfg, c.Redis)

	alerts := notify.Sink(notify.LogSink{})
	if c.Producer != nil {
		alerts = notify.Multi{notify.LogSink{}, notify.NewProducerSink(c.Producer)}
	}

	c.Device = simulator.New(cfg.Simulator)
	c.Wallet = wallet.NewService(c.Cache, c.Device, c.Producer)
	c.Keystone = keystone.NewService(
		keystone.Options{HideEnterAccountIDModal: cfg.Keystone.HideEnterAccountIDModal},
		c.Device, c.Wallet, hdpath.NewStore(c.Cache), alerts,
	)
	c.Recovery = recovery.NewService(c.Wallet)

	for _, k := range c.Device.Keys() {
		for _, accountID := range k.Accounts {
			if err := c.Wallet.RegisterAccount(ctx, k.PublicKey, accountID); err != nil {
				c.Close()
				return nil, fmt.Errorf("register simulated account %s: %w", accountID, err)
			}
		}
	}
	return c, nil
}

func newCache(storage string, rdb *redis.Client) (cache.Cache, error) {
	switch storage {
	case "", "memory":
		return cache.NewMemoryCache(0, 10*time.Minute), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("keystone.storage=redis requires redis.enabled")
		}
		return cache.NewRedisCache(rdb), nil
	case "multilevel":
		if rdb == nil {
			return nil, errors.New("keystone.storage=multilevel requires redis.enabled")
		}
		return cache.NewMultiLevelCache(cache.NewMemoryCache(0, 10*time.Minute), cache.NewRedisCache(rdb)), nil
	default:
		return nil, fmt.Errorf("unknown keystone.storage %q", storage)
	}
}

func newProducer(cfg config.Config, rdb *redis.Client) mq.Producer {
	if cfg.Redis.MQType == "kafka" {
		logger.Info("使用 Kafka 作为消息队列...", zap.Strings("brokers", cfg.Kafka.Brokers))
		return mq.NewKafkaProducer(cfg.Kafka.Brokers)
	}
	if rdb != nil {
		logger.Info("使用 Redis Streams 作为消息队列...")
		return mq.NewRedisProducer(rdb)
	}
	logger.Info("未配置消息队列，事件只写日志")
	return nil
}

// NewConsumer 按配置创建事件消费者
func NewConsumer(cfg config.Config, rdb *redis.Client, group, name string) (mq.Consumer, error) {
	if cfg.Redis.MQType == "kafka" {
		return mq.NewKafkaConsumer(cfg.Kafka.Brokers, group), nil
	}
	if rdb == nil {
		return nil, errors.New("redis streams consumer requires redis.enabled")
	}
	return mq.NewRedisConsumer(rdb, group, name), nil
}

// Close 释放连接
func (c *Components) Close() {
	if closer, ok := c.Producer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("close producer failed", zap.Error(err))
		}
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
