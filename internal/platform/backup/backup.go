package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SlpAus/mini-cup-backend/pkg/lifecycle"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const fileLayout = "minicup-20060102T150405Z.db"

// ErrUnsupported 表示当前数据库驱动不支持文件快照
var ErrUnsupported = errors.New("只有SQLite支持文件备份")

// Backuper 使用 VACUUM INTO 为SQLite数据库生成一致的快照文件
type Backuper struct {
	db    *gorm.DB
	dir   string
	clock clockwork.Clock
	mu    sync.Mutex // 避免定时备份与最终备份竞态
}

func New(db *gorm.DB, dir string, clock clockwork.Clock) *Backuper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Backuper{db: db, dir: dir, clock: clock}
}

// Supported 报告底层数据库是否可以备份
func (b *Backuper) Supported() bool {
	return b.db.Dialector.Name() == "sqlite"
}

// RunOnce 立即执行一次备份，返回快照文件路径
func (b *Backuper) RunOnce(ctx context.Context) (string, error) {
	if !b.Supported() {
		return "", ErrUnsupported
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("无法创建备份目录: %w", err)
	}
	path := filepath.Join(b.dir, b.clock.Now().UTC().Format(fileLayout))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("备份文件 %s 已存在", path)
	}

	if err := b.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return "", fmt.Errorf("执行 VACUUM INTO 失败: %w", err)
	}
	return path, nil
}

// Run 按 cron 表达式定期备份，阻塞直到生命周期句柄发出停机信号。
// 正在执行的备份会在返回前完成。
func (b *Backuper) Run(handle *lifecycle.Handle, schedule string) error {
	defer handle.Close()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		path, err := b.RunOnce(handle.Ctx())
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("备份调度器: 定时备份失败")
			}
			return
		}
		log.Info().Str("path", path).Msg("备份调度器: 定时备份成功")
	})
	if err != nil {
		return fmt.Errorf("无效的备份计划 %q: %w", schedule, err)
	}

	c.Start()
	log.Info().Str("schedule", schedule).Str("dir", b.dir).Msg("备份调度器已启动。")

	<-handle.Done()
	<-c.Stop().Done()
	log.Info().Msg("备份调度器已停止。")
	return nil
}
