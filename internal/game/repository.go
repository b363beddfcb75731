package game

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository 封装对局和进球表
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) insertSession(tx *gorm.DB, s *GameSession) error {
	if err := tx.Create(s).Error; err != nil {
		return fmt.Errorf("无法写入对局记录: %w", err)
	}
	return nil
}

func (r *Repository) insertGoal(tx *gorm.DB, g *Goal) error {
	if err := tx.Create(g).Error; err != nil {
		return fmt.Errorf("无法写入进球记录: %w", err)
	}
	return nil
}

// PurgeTeam 删除某队伍的全部进球和对局记录
func (r *Repository) PurgeTeam(tx *gorm.DB, teamID string) error {
	if err := tx.Where("team_id = ?", teamID).Delete(&Goal{}).Error; err != nil {
		return fmt.Errorf("无法删除队伍 %s 的进球记录: %w", teamID, err)
	}
	if err := tx.Where("team_id = ?", teamID).Delete(&GameSession{}).Error; err != nil {
		return fmt.Errorf("无法删除队伍 %s 的对局记录: %w", teamID, err)
	}
	return nil
}

// Sessions 返回 since 之后（含）的对局，since 为零值时返回全部
func (r *Repository) Sessions(ctx context.Context, since time.Time) ([]GameSession, error) {
	q := r.db.WithContext(ctx).Model(&GameSession{})
	if !since.IsZero() {
		q = q.Where("timestamp >= ?", since)
	}
	var sessions []GameSession
	if err := q.Order("timestamp ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("无法读取对局记录: %w", err)
	}
	return sessions, nil
}
