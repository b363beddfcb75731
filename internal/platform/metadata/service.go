package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue 读取一个键的值，键不存在时返回空串
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue 以upsert方式写入一个键
func SetValue(db *gorm.DB, key, value string) error {
	// key 冲突时只更新 value 和 updated_at
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}

// --- Game Config ---

// Store 读写存放在metadata表中的游戏配置
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GameConfig 返回当前配置，未设置过时返回默认值
func (s *Store) GameConfig(ctx context.Context) (GameConfig, error) {
	raw, err := GetValue(s.db.WithContext(ctx), GameConfigKey)
	if err != nil {
		return GameConfig{}, fmt.Errorf("无法读取游戏配置: %w", err)
	}
	if raw == "" {
		return DefaultGameConfig(), nil
	}
	var cfg GameConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("无法解析元数据 '%s' 的值: %w", GameConfigKey, err)
	}
	return cfg, nil
}

// SetGameConfig 校验并整体替换游戏配置
func (s *Store) SetGameConfig(ctx context.Context, cfg GameConfig) error {
	if err := validation.Struct(cfg); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("无法序列化游戏配置: %w", err)
	}
	if err := SetValue(s.db.WithContext(ctx), GameConfigKey, string(raw)); err != nil {
		return fmt.Errorf("无法保存游戏配置: %w", err)
	}
	return nil
}
