package team

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ShirtURLPrefix 是球衣图片对外的URL前缀，对应 uploads.dir/shirts 目录
const ShirtURLPrefix = "/uploads/shirts/"

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

// RecordPurger 删除队伍时清理其对局与进球记录，由game模块实现
type RecordPurger interface {
	PurgeTeam(tx *gorm.DB, teamID string) error
}

type Service struct {
	db        *gorm.DB
	repo      *Repository
	countries *country.Repository
	purger    RecordPurger
	shirtDir  string
}

// NewService 创建队伍服务，uploadsDir 是上传文件的根目录
func NewService(db *gorm.DB, repo *Repository, countries *country.Repository, purger RecordPurger, uploadsDir string) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		countries: countries,
		purger:    purger,
		shirtDir:  filepath.Join(uploadsDir, "shirts"),
	}
}

// ShirtDir 返回球衣图片的存放目录
func (s *Service) ShirtDir() string {
	return s.shirtDir
}

// rejoin 用当前的国家数据覆盖队伍上的冗余字段，找不到国家时保留原值
func rejoin(teams []Team, lookup map[string]country.Country) {
	for i := range teams {
		if c, ok := lookup[teams[i].CountryID]; ok {
			teams[i].CountryName = c.Name
			teams[i].Flag = c.Flag
		}
	}
}

func (s *Service) List(ctx context.Context) ([]Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.countries.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	rejoin(teams, lookup)
	return teams, nil
}

// ListByCountry 返回某国家的队伍。国家不存在时返回空列表。
func (s *Service) ListByCountry(ctx context.Context, countryID string) ([]Team, error) {
	teams, err := s.repo.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, err
	}
	lookup, err := s.countries.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	rejoin(teams, lookup)
	return teams, nil
}

// Create 新建队伍，国家必须存在，进球数从0开始
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Team, error) {
	c, err := s.countries.Get(ctx, req.CountryID)
	if err != nil {
		return nil, err
	}
	t := &Team{
		TeamID:         req.TeamID,
		Name:           req.Name,
		CountryID:      c.CountryID,
		CountryName:    c.Name,
		Flag:           c.Flag,
		Color:          req.Color,
		ShirtDesignURL: req.ShirtDesignURL,
	}
	if err := validation.Struct(t); err != nil {
		return nil, err
	}
	if err := s.repo.create(s.db.WithContext(ctx), t); err != nil {
		return nil, err
	}
	log.Info().Str("team_id", t.TeamID).Str("country_id", t.CountryID).Msg("队伍已创建")
	return t, nil
}

// Update 部分更新队伍
func (s *Service) Update(ctx context.Context, teamID string, req UpdateRequest) (*Team, error) {
	if req.empty() {
		return nil, fmt.Errorf("%w: 没有需要更新的字段", apperr.ErrValidation)
	}

	var updated *Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.repo.GetIn(tx, teamID)
		if err != nil {
			return err
		}
		if req.CountryID != nil {
			c, err := s.countries.GetIn(tx, *req.CountryID)
			if err != nil {
				return err
			}
			t.CountryID = c.CountryID
			t.CountryName = c.Name
			t.Flag = c.Flag
		}
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Color != nil {
			t.Color = *req.Color
		}
		if req.ShirtDesignURL != nil {
			t.ShirtDesignURL = req.ShirtDesignURL
		}
		if err := validation.Struct(t); err != nil {
			return err
		}
		if err := s.repo.save(tx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 在一个事务里删除队伍及其全部对局和进球记录
func (s *Service) Delete(ctx context.Context, teamID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.delete(tx, teamID); err != nil {
			return err
		}
		return s.purger.PurgeTeam(tx, teamID)
	})
	if err != nil {
		return err
	}
	log.Info().Str("team_id", teamID).Msg("队伍及其记录已删除")
	return nil
}

// UploadShirt 把球衣图片保存为 <team_id>_<uuid>.<ext> 并写回队伍的 shirt_design_url。
// save 负责把上传内容写到给定路径。
func (s *Service) UploadShirt(ctx context.Context, teamID, filename string, save func(dst string) error) (string, error) {
	// 队伍标识会成为文件名的一部分
	if !validation.IsSlug(teamID) {
		return "", fmt.Errorf("%w: 队伍标识无效", apperr.ErrValidation)
	}
	if _, err := s.repo.Get(ctx, teamID); err != nil {
		return "", err
	}

	ext := shirtExt(filename)
	if !extPattern.MatchString(ext) {
		return "", fmt.Errorf("%w: 文件扩展名无效", apperr.ErrValidation)
	}

	if err := os.MkdirAll(s.shirtDir, 0o755); err != nil {
		return "", fmt.Errorf("无法创建上传目录: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", teamID, uuid.NewString(), ext)
	dst := filepath.Join(s.shirtDir, name)
	if err := save(dst); err != nil {
		return "", fmt.Errorf("无法保存球衣图片: %w", err)
	}

	url := ShirtURLPrefix + name
	err := s.db.WithContext(ctx).Model(&Team{}).Where("team_id = ?", teamID).
		Update("shirt_design_url", url).Error
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("无法更新队伍 %s 的球衣: %w", teamID, err)
	}
	log.Info().Str("team_id", teamID).Str("file", name).Msg("球衣图片已上传")
	return url, nil
}

// shirtExt 取文件名最后一个点之后的部分，没有点时取整个文件名
func shirtExt(filename string) string {
	base := filepath.Base(filename)
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	return strings.ToLower(base)
}
