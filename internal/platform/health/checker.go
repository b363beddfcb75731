package health

import (
	"context"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/SlpAus/mini-cup-backend/pkg/lifecycle"
	"github.com/rs/zerolog/log"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// Pinger 是健康检查对Redis客户端的最小依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 把普通函数适配为 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Checker 定期Ping Redis并更新共享的健康状态
type Checker struct {
	pinger Pinger
	status *database.Status
}

func NewChecker(pinger Pinger, status *database.Status) *Checker {
	return &Checker{pinger: pinger, status: status}
}

// PerformCheck 执行一次检查
func (c *Checker) PerformCheck(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	err := c.pinger.Ping(pingCtx)
	if err != nil && ctx.Err() != nil {
		// 停机导致的失败不算Redis故障
		return
	}
	if err != nil {
		log.Debug().Err(err).Msg("健康检查: Redis Ping失败")
	}
	c.status.Update(err == nil)
}

// Run 阻塞式地循环执行健康检查，直到生命周期句柄发出停机信号
func (c *Checker) Run(handle *lifecycle.Handle) {
	defer handle.Close()
	log.Info().Msg("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			log.Info().Msg("Redis健康检查器已停止。")
			return
		}
		c.PerformCheck(handle.Ctx())
	}
}
