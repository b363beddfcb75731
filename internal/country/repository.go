package country

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"gorm.io/gorm"
)

// Repository 封装countries表的读写
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List 按创建顺序返回全部国家
func (r *Repository) List(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("无法读取国家列表: %w", err)
	}
	return countries, nil
}

// Get 按业务主键查找国家，不存在时返回 apperr.ErrNotFound
func (r *Repository) Get(ctx context.Context, countryID string) (*Country, error) {
	return r.GetIn(r.db.WithContext(ctx), countryID)
}

// GetIn 在给定事务内查找国家
func (r *Repository) GetIn(tx *gorm.DB, countryID string) (*Country, error) {
	var c Country
	err := tx.Where("country_id = ?", countryID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 国家 %s", apperr.ErrNotFound, countryID)
		}
		return nil, fmt.Errorf("无法读取国家 %s: %w", countryID, err)
	}
	return &c, nil
}

// Lookup 返回 country_id 到国家的映射，用于批量回填队伍的国家字段
func (r *Repository) Lookup(ctx context.Context) (map[string]Country, error) {
	countries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.CountryID] = c
	}
	return m, nil
}

func (r *Repository) create(tx *gorm.DB, c *Country) error {
	var n int64
	if err := tx.Model(&Country{}).Where("country_id = ?", c.CountryID).Count(&n).Error; err != nil {
		return fmt.Errorf("无法检查国家ID: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 国家ID %s 已存在", apperr.ErrConflict, c.CountryID)
	}
	if err := tx.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 国家ID %s 已存在", apperr.ErrConflict, c.CountryID)
		}
		return fmt.Errorf("无法创建国家: %w", err)
	}
	return nil
}

func (r *Repository) save(tx *gorm.DB, c *Country) error {
	if err := tx.Save(c).Error; err != nil {
		return fmt.Errorf("无法更新国家 %s: %w", c.CountryID, err)
	}
	return nil
}

func (r *Repository) delete(tx *gorm.DB, countryID string) error {
	res := tx.Where("country_id = ?", countryID).Delete(&Country{})
	if res.Error != nil {
		return fmt.Errorf("无法删除国家 %s: %w", countryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 国家 %s", apperr.ErrNotFound, countryID)
	}
	return nil
}
