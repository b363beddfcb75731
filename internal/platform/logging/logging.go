package logging

import (
	"io"
	"os"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup 根据配置初始化全局zerolog日志器
func Setup(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
