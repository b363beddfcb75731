package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/mini-cup-backend/pkg/lifecycle"
	"github.com/rs/zerolog/log"
)

const (
	httpTimeout     = 15 * time.Second
	gracefulTimeout = 30 * time.Second
	forcefulTimeout = 1 * time.Second
)

// FinalTask 在所有后台服务退出后执行，例如最终备份
type FinalTask func(ctx context.Context) error

// Coordinator 负责编排应用程序的优雅停机流程。
type Coordinator struct {
	GracefulManager *lifecycle.Manager
	ForcefulManager *lifecycle.Manager
	finalTasks      []namedTask
}

type namedTask struct {
	name string
	run  FinalTask
}

func NewCoordinator(gracefulMgr, forcefulMgr *lifecycle.Manager) *Coordinator {
	return &Coordinator{
		GracefulManager: gracefulMgr,
		ForcefulManager: forcefulMgr,
	}
}

// OnFinal 注册一个停机收尾任务，按注册顺序执行
func (c *Coordinator) OnFinal(name string, task FinalTask) {
	c.finalTasks = append(c.finalTasks, namedTask{name: name, run: task})
}

// ListenForSignalsAndShutdown 阻塞直到收到 SIGINT/SIGTERM，然后完成停机流程。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("收到关闭信号，开始优雅停机...")
	c.Shutdown(server)
}

// Shutdown 依次关闭HTTP服务器、后台服务，最后执行收尾任务
func (c *Coordinator) Shutdown(server *http.Server) {
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP服务器关闭错误")
		} else {
			log.Info().Msg("HTTP服务器已关闭。")
		}
	}

	// 阶段一: 优雅停机
	log.Info().Dur("timeout", gracefulTimeout).Msg("第一阶段停机：等待后台任务完成...")
	c.GracefulManager.Shutdown()
	remaining := c.GracefulManager.WaitWithTimeout(gracefulTimeout)
	if len(remaining) == 0 {
		log.Info().Msg("所有服务已在第一阶段优雅关闭。")
	} else {
		// 阶段二: 强制停机，不再等待未响应的服务
		log.Warn().Strs("services", remaining).Msg("第一阶段超时，发送强制停机信号")
		c.ForcefulManager.Shutdown()
		if stuck := c.ForcefulManager.WaitWithTimeout(forcefulTimeout); len(stuck) > 0 {
			log.Error().Strs("services", stuck).Msg("仍有服务未退出")
		}
	}

	for _, task := range c.finalTasks {
		if err := task.run(context.Background()); err != nil {
			log.Error().Err(err).Str("task", task.name).Msg("停机收尾任务失败")
			continue
		}
		log.Info().Str("task", task.name).Msg("停机收尾任务完成")
	}

	log.Info().Msg("优雅停机完成。")
}
