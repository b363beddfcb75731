package metadata

import "time"

// Metadata 定义了存储系统元数据的键值对表结构
type Metadata struct {
	ID uint `gorm:"primarykey"`

	// Key 是元数据的唯一键，例如 "game_config"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Value 存储元数据的值
	Value string `gorm:"type:text"`

	UpdatedAt time.Time
}

// GameConfig 是前端使用的游戏次数配置
type GameConfig struct {
	FreePlays       int `json:"free_plays" validate:"gte=0"`
	PlaysPerAd      int `json:"plays_per_ad" validate:"gte=0"`
	PlaysPerShare   int `json:"plays_per_share" validate:"gte=0"`
	MaxAdViews      int `json:"max_ad_views" validate:"gte=0"`
	MaxShareRewards int `json:"max_share_rewards" validate:"gte=0"`
}

// DefaultGameConfig 在数据库中还没有配置时使用
func DefaultGameConfig() GameConfig {
	return GameConfig{
		FreePlays:       2,
		PlaysPerAd:      2,
		PlaysPerShare:   2,
		MaxAdViews:      5,
		MaxShareRewards: 3,
	}
}
