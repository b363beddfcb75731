package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PrimeDB 负责迁移game模块的数据库表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&GameSession{}, &Goal{}); err != nil {
		return fmt.Errorf("无法迁移game表: %w", err)
	}
	log.Info().Msg("Game数据库表迁移成功。")
	return nil
}
