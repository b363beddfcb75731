package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"gorm.io/gorm"
)

// Repository 封装teams表的读写
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List 按创建顺序返回全部队伍
func (r *Repository) List(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("无法读取队伍列表: %w", err)
	}
	return teams, nil
}

func (r *Repository) ListByCountry(ctx context.Context, countryID string) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).Where("country_id = ?", countryID).Order("id ASC").Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取国家 %s 的队伍: %w", countryID, err)
	}
	return teams, nil
}

func (r *Repository) Get(ctx context.Context, teamID string) (*Team, error) {
	return r.GetIn(r.db.WithContext(ctx), teamID)
}

// GetIn 在给定事务内按业务主键查找队伍，不存在时返回 apperr.ErrNotFound
func (r *Repository) GetIn(tx *gorm.DB, teamID string) (*Team, error) {
	var t Team
	err := tx.Where("team_id = ?", teamID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 队伍 %s", apperr.ErrNotFound, teamID)
		}
		return nil, fmt.Errorf("无法读取队伍 %s: %w", teamID, err)
	}
	return &t, nil
}

// AddGoals 原子地把 delta 累加到队伍的进球计数上
func (r *Repository) AddGoals(tx *gorm.DB, teamID string, delta int) error {
	res := tx.Model(&Team{}).Where("team_id = ?", teamID).
		UpdateColumn("goals", gorm.Expr("goals + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("无法更新队伍 %s 的进球数: %w", teamID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 队伍 %s", apperr.ErrNotFound, teamID)
	}
	return nil
}

// CountByCountry 统计引用某个国家的队伍数量
func (r *Repository) CountByCountry(tx *gorm.DB, countryID string) (int64, error) {
	var n int64
	if err := tx.Model(&Team{}).Where("country_id = ?", countryID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("无法统计国家 %s 的队伍: %w", countryID, err)
	}
	return n, nil
}

// SyncCountry 把国家的名称和国旗写回该国所有队伍
func (r *Repository) SyncCountry(tx *gorm.DB, c country.Country) error {
	err := tx.Model(&Team{}).Where("country_id = ?", c.CountryID).
		Updates(map[string]any{"country_name": c.Name, "flag": c.Flag}).Error
	if err != nil {
		return fmt.Errorf("无法同步国家 %s 的队伍: %w", c.CountryID, err)
	}
	return nil
}

func (r *Repository) create(tx *gorm.DB, t *Team) error {
	var n int64
	if err := tx.Model(&Team{}).Where("team_id = ?", t.TeamID).Count(&n).Error; err != nil {
		return fmt.Errorf("无法检查队伍ID: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 队伍ID %s 已存在", apperr.ErrConflict, t.TeamID)
	}
	if err := tx.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 队伍ID %s 已存在", apperr.ErrConflict, t.TeamID)
		}
		return fmt.Errorf("无法创建队伍: %w", err)
	}
	return nil
}

// save 不写 goals 列，计数只通过 AddGoals 修改
func (r *Repository) save(tx *gorm.DB, t *Team) error {
	err := tx.Model(&Team{}).Where("id = ?", t.ID).Updates(map[string]any{
		"name":             t.Name,
		"country_id":       t.CountryID,
		"country_name":     t.CountryName,
		"flag":             t.Flag,
		"color":            t.Color,
		"shirt_design_url": t.ShirtDesignURL,
	}).Error
	if err != nil {
		return fmt.Errorf("无法更新队伍 %s: %w", t.TeamID, err)
	}
	return nil
}

func (r *Repository) delete(tx *gorm.DB, teamID string) error {
	res := tx.Where("team_id = ?", teamID).Delete(&Team{})
	if res.Error != nil {
		return fmt.Errorf("无法删除队伍 %s: %w", teamID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 队伍 %s", apperr.ErrNotFound, teamID)
	}
	return nil
}
