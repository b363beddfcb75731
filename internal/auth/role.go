package auth

import (
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
)

// Role 是用户角色，只有两级: user < admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var roleLevels = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid 报告角色是否为已知取值
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Satisfies 报告 r 是否达到 required 的级别，未知角色从不满足任何要求
func (r Role) Satisfies(required Role) bool {
	have, ok := roleLevels[r]
	if !ok {
		return false
	}
	need, ok := roleLevels[required]
	if !ok {
		return false
	}
	return have >= need
}

// RequireRole 在令牌中的角色低于要求时返回 ErrForbidden
func RequireRole(id token.Identity, required Role) error {
	if !Role(id.Role).Satisfies(required) {
		return fmt.Errorf("%w: 需要 %s 角色", apperr.ErrForbidden, required)
	}
	return nil
}
