package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metrics"
	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Issuer 为通过认证的用户签发令牌
type Issuer interface {
	Issue(id token.Identity) (string, time.Time, error)
}

// Service 实现注册、登录和用户管理
type Service struct {
	db     *gorm.DB
	repo   *Repository
	hasher *auth.PasswordHasher
	tokens Issuer
}

func NewService(db *gorm.DB, repo *Repository, hasher *auth.PasswordHasher, tokens Issuer) *Service {
	return &Service{db: db, repo: repo, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册新用户，角色固定为 user
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.create(ctx, req.Username, req.Email, req.Password, auth.RoleUser, req.CountryID, req.TeamID)
}

func (s *Service) create(ctx context.Context, username, email, password string, role auth.Role, countryID, teamID *string) (*User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: 密码不能为空", apperr.ErrValidation)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		UserID:       uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        normalizeEmail(email),
		Role:         string(role),
		PasswordHash: hash,
		CountryID:    countryID,
		TeamID:       teamID,
	}
	if err := validation.Struct(u); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.create(tx, u)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.UserID).Str("role", u.Role).Msg("用户已创建")
	return u, nil
}

// Login 校验邮箱和密码并签发令牌。邮箱不存在和密码错误返回同一个错误。
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if u == nil || !s.hasher.Verify(req.Password, u.PasswordHash) {
		metrics.RecordLogin("failure")
		return nil, fmt.Errorf("%w: 邮箱或密码错误", apperr.ErrInvalid)
	}

	signed, expiresAt, err := s.tokens.Issue(token.Identity{
		SubjectID: u.UserID,
		Username:  u.Username,
		Role:      u.Role,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLogin("success")
	return &TokenResponse{AccessToken: signed, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// Me 返回令牌对应的用户。令牌有效但用户已被删除时返回 NotFound。
func (s *Service) Me(ctx context.Context, id token.Identity) (*User, error) {
	return s.repo.Get(ctx, id.SubjectID)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update 部分更新用户，新密码会重新哈希
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*User, error) {
	if req.empty() {
		return nil, fmt.Errorf("%w: 没有需要更新的字段", apperr.ErrValidation)
	}
	if req.Role != nil && !auth.Role(*req.Role).Valid() {
		return nil, fmt.Errorf("%w: 未知角色 %s", apperr.ErrValidation, *req.Role)
	}

	var newHash string
	if req.Password != nil {
		if *req.Password == "" {
			return nil, fmt.Errorf("%w: 密码不能为空", apperr.ErrValidation)
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		newHash = hash
	}

	var updated *User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.repo.first(tx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		if req.Username != nil {
			u.Username = strings.TrimSpace(*req.Username)
		}
		if req.Email != nil {
			u.Email = normalizeEmail(*req.Email)
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		if req.CountryID != nil {
			u.CountryID = req.CountryID
		}
		if req.TeamID != nil {
			u.TeamID = req.TeamID
		}
		if err := validation.Struct(u); err != nil {
			return err
		}
		if err := s.repo.save(tx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除用户，管理员不能删除自己
func (s *Service) Delete(ctx context.Context, userID, callerID string) error {
	if userID == callerID {
		return fmt.Errorf("%w: 不能删除自己的账号", apperr.ErrValidation)
	}
	if err := s.repo.delete(s.db.WithContext(ctx), userID); err != nil {
		return err
	}
	log.Info().Str("user_id", userID).Str("by", callerID).Msg("用户已删除")
	return nil
}

// EnsureAdmin 在邮箱尚未注册时创建管理员账号，返回是否新建
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}
	if _, err := s.create(ctx, username, email, password, auth.RoleAdmin, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}
