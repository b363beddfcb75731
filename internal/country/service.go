package country

import (
	"context"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TeamLinker 是国家模块对队伍表的依赖，由team模块实现。
// 方法都在调用方给出的事务内执行。
type TeamLinker interface {
	CountByCountry(tx *gorm.DB, countryID string) (int64, error)
	SyncCountry(tx *gorm.DB, c Country) error
}

// Service 实现国家的增删改查
type Service struct {
	db    *gorm.DB
	repo  *Repository
	teams TeamLinker
}

func NewService(db *gorm.DB, repo *Repository, teams TeamLinker) *Service {
	return &Service{db: db, repo: repo, teams: teams}
}

func (s *Service) List(ctx context.Context) ([]Country, error) {
	return s.repo.List(ctx)
}

// Create 新建国家，ID重复时返回冲突
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Country, error) {
	c := &Country{
		CountryID: req.CountryID,
		Name:      req.Name,
		Flag:      req.Flag,
		Color:     req.Color,
	}
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	if err := s.repo.create(s.db.WithContext(ctx), c); err != nil {
		return nil, err
	}
	log.Info().Str("country_id", c.CountryID).Msg("国家已创建")
	return c, nil
}

// Update 部分更新国家。名称或国旗变化时，同一事务内刷新所有队伍上的冗余字段。
func (s *Service) Update(ctx context.Context, countryID string, req UpdateRequest) (*Country, error) {
	if req.empty() {
		return nil, fmt.Errorf("%w: 没有需要更新的字段", apperr.ErrValidation)
	}

	var updated *Country
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.repo.GetIn(tx, countryID)
		if err != nil {
			return err
		}
		denormChanged := false
		if req.Name != nil && *req.Name != c.Name {
			c.Name = *req.Name
			denormChanged = true
		}
		if req.Flag != nil && *req.Flag != c.Flag {
			c.Flag = *req.Flag
			denormChanged = true
		}
		if req.Color != nil {
			c.Color = *req.Color
		}
		if err := validation.Struct(c); err != nil {
			return err
		}
		if err := s.repo.save(tx, c); err != nil {
			return err
		}
		if denormChanged {
			if err := s.teams.SyncCountry(tx, *c); err != nil {
				return err
			}
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除国家，仍有队伍引用时返回冲突
func (s *Service) Delete(ctx context.Context, countryID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.teams.CountByCountry(tx, countryID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: 国家 %s 下还有 %d 支队伍", apperr.ErrConflict, countryID, n)
		}
		if err := s.repo.delete(tx, countryID); err != nil {
			return err
		}
		log.Info().Str("country_id", countryID).Msg("国家已删除")
		return nil
	})
}
