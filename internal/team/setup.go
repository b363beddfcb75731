package team

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PrimeDB 负责迁移team模块的数据库表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Team{}); err != nil {
		return fmt.Errorf("无法迁移team表: %w", err)
	}
	log.Info().Msg("Team数据库表迁移成功。")
	return nil
}
