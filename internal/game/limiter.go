package game

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// playKeyPrefix 是Redis中每个IP的有序集合键名前缀
const playKeyPrefix = "ip_plays:"

// HealthReporter 报告Redis当前是否可用
type HealthReporter interface {
	IsRedisHealthy() bool
}

// PlayCompensator 封装了一次IP计数增加操作的回滚逻辑。
// 业务流程失败时通过defer执行补偿。
type PlayCompensator struct {
	rdb       *redis.Client
	key       string
	member    string
	committed bool
}

// Commit 标记对局已成功写入，阻止后续的回滚
func (c *PlayCompensator) Commit() {
	c.committed = true
}

// RollbackUnlessCommitted 在未 Commit 时从有序集合中移除本次计数
func (c *PlayCompensator) RollbackUnlessCommitted() {
	if c.committed {
		return
	}
	// 请求的ctx可能已经取消，补偿使用独立的短超时
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.rdb.ZRem(ctx, c.key, c.member).Err(); err != nil {
		log.Error().Err(err).Str("key", c.key).Str("member", c.member).Msg("严重警告: IP游戏计数补偿操作失败")
	}
}

// PlayLimiter 用滑动窗口限制每个IP在窗口内的游戏次数
type PlayLimiter struct {
	rdb      *redis.Client
	status   HealthReporter
	maxPlays int64
	window   time.Duration
	ttl      time.Duration
}

func NewPlayLimiter(rdb *redis.Client, status HealthReporter, cfg config.PlayLimitConfig) *PlayLimiter {
	return &PlayLimiter{
		rdb:      rdb,
		status:   status,
		maxPlays: cfg.MaxPlays,
		window:   cfg.Window,
		// 比窗口稍长以作缓冲
		ttl: cfg.Window + time.Hour,
	}
}

// Acquire 为一个IP原子地记录一次游戏，并检查窗口内的总次数。
// 超出上限返回 ErrRateLimited，Redis不可用返回 ErrUnavailable。
// 成功时返回补偿句柄，调用方必须 defer RollbackUnlessCommitted。
func (l *PlayLimiter) Acquire(ctx context.Context, ip string, at time.Time) (*PlayCompensator, error) {
	if net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("%w: 客户端IP无效", apperr.ErrValidation)
	}
	if !l.status.IsRedisHealthy() {
		return nil, fmt.Errorf("%w: 无法获取游戏频率", apperr.ErrUnavailable)
	}

	key := playKeyPrefix + ip
	// 窗口之前的记录都要清理
	minScore := strconv.FormatInt(at.Add(-l.window).UnixMicro(), 10)
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成计数成员失败: %w", err)
	}
	member := id.String()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", "("+minScore)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixMicro()), Member: member})
	pipe.Expire(ctx, key, l.ttl)
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: 执行IP计数事务失败: %v", apperr.ErrUnavailable, err)
	}

	comp := &PlayCompensator{rdb: l.rdb, key: key, member: member}
	if countCmd.Val() > l.maxPlays {
		comp.RollbackUnlessCommitted()
		return nil, fmt.Errorf("%w: 该IP在 %v 内已达到 %d 局上限", apperr.ErrRateLimited, l.window, l.maxPlays)
	}
	return comp, nil
}
