package user

import "time"

// User 是注册用户。PasswordHash 永远不会被序列化到响应中。
type User struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	UserID       string    `gorm:"uniqueIndex;not null;type:varchar(36)" json:"user_id" validate:"required"`
	Username     string    `gorm:"uniqueIndex;not null;type:varchar(64)" json:"username" validate:"required,max=64"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email" validate:"required,email,max=255"`
	Role         string    `gorm:"not null;type:varchar(16)" json:"role" validate:"required,oneof=admin user"`
	PasswordHash string    `gorm:"not null" json:"-" validate:"required"`
	CountryID    *string   `gorm:"type:varchar(64)" json:"country_id"`
	TeamID       *string   `gorm:"type:varchar(64)" json:"team_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest 是公开注册的请求体，注册用户的角色固定为 user
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required"`
	CountryID *string `json:"country_id"`
	TeamID    *string `json:"team_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 是登录成功后返回的令牌
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UpdateRequest 是管理员修改用户的请求体，只更新非空字段
type UpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Password  *string `json:"password"`
	CountryID *string `json:"country_id"`
	TeamID    *string `json:"team_id"`
}

func (r UpdateRequest) empty() bool {
	return r.Username == nil && r.Email == nil && r.Role == nil &&
		r.Password == nil && r.CountryID == nil && r.TeamID == nil
}
