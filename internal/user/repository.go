package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"gorm.io/gorm"
)

// Repository 封装users表的读写
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法读取用户列表: %w", err)
	}
	return users, nil
}

func (r *Repository) Get(ctx context.Context, userID string) (*User, error) {
	return r.first(r.db.WithContext(ctx), "user_id = ?", userID)
}

// GetByEmail 按邮箱查找用户，邮箱已在写入时统一为小写
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", email)
}

func (r *Repository) first(tx *gorm.DB, query string, arg string) (*User, error) {
	var u User
	err := tx.Where(query, arg).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户 %s", apperr.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("无法读取用户: %w", err)
	}
	return &u, nil
}

// checkUnique 检查邮箱和用户名是否已被 exceptID 以外的用户占用
func (r *Repository) checkUnique(tx *gorm.DB, email, username string, exceptID uint) error {
	var n int64
	q := tx.Model(&User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("无法检查邮箱: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 邮箱已被注册", apperr.ErrConflict)
	}

	q = tx.Model(&User{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("无法检查用户名: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 用户名已被占用", apperr.ErrConflict)
	}
	return nil
}

func (r *Repository) create(tx *gorm.DB, u *User) error {
	if err := r.checkUnique(tx, u.Email, u.Username, 0); err != nil {
		return err
	}
	if err := tx.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 用户已存在", apperr.ErrConflict)
		}
		return fmt.Errorf("无法创建用户: %w", err)
	}
	return nil
}

func (r *Repository) save(tx *gorm.DB, u *User) error {
	if err := r.checkUnique(tx, u.Email, u.Username, u.ID); err != nil {
		return err
	}
	if err := tx.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: 用户名或邮箱已存在", apperr.ErrConflict)
		}
		return fmt.Errorf("无法更新用户 %s: %w", u.UserID, err)
	}
	return nil
}

func (r *Repository) delete(tx *gorm.DB, userID string) error {
	res := tx.Where("user_id = ?", userID).Delete(&User{})
	if res.Error != nil {
		return fmt.Errorf("无法删除用户 %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 用户 %s", apperr.ErrNotFound, userID)
	}
	return nil
}
