package country

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PrimeDB 负责迁移country模块的数据库表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Country{}); err != nil {
		return fmt.Errorf("无法迁移country表: %w", err)
	}
	log.Info().Msg("Country数据库表迁移成功。")
	return nil
}
