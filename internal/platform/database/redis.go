package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisDialTimeout = 3 * time.Second

// OpenRedis 初始化与Redis的连接，未配置地址时返回nil
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		log.Info().Msg("未配置Redis，游戏次数限制与Redis健康检查将被禁用")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("无法连接到Redis: %w", err)
	}

	log.Info().Str("address", cfg.Address).Msg("Redis 连接成功")
	return rdb, nil
}
