package user

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PrimeDB 负责迁移user模块的数据库表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	log.Info().Msg("User数据库表迁移成功。")
	return nil
}
