package startup

import (
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metadata"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InitializeApplication 是应用启动时执行的总入口，按依赖顺序迁移各模块的表
func InitializeApplication(db *gorm.DB) error {
	log.Info().Msg("开始应用初始化...")

	steps := []struct {
		name  string
		prime func(*gorm.DB) error
	}{
		{"metadata", metadata.PrimeDB},
		{"country", country.PrimeDB},
		{"team", team.PrimeDB},
		{"game", game.PrimeDB},
		{"user", user.PrimeDB},
	}
	for _, step := range steps {
		if err := step.prime(db); err != nil {
			return fmt.Errorf("初始化模块 %s 失败: %w", step.name, err)
		}
	}

	log.Info().Msg("应用初始化完成！")
	return nil
}
