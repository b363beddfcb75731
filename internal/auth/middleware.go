package auth

import (
	"fmt"
	"strings"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const identityKey = "authIdentity"

// Validator 是中间件对令牌服务的最小依赖
type Validator interface {
	Validate(tokenString string) (token.Identity, error)
}

// bearerToken 从 Authorization 头中取出令牌，头不存在时 ok 为false
func bearerToken(c *gin.Context) (string, bool, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false, nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, fmt.Errorf("%w: Authorization头格式错误", apperr.ErrInvalid)
	}
	return strings.TrimSpace(parts[1]), true, nil
}

// RequireAuth 要求请求携带有效的Bearer令牌，并把身份放入Gin上下文
func RequireAuth(v Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present, err := bearerToken(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if !present {
			apperr.Respond(c, fmt.Errorf("%w: 缺少Authorization头", apperr.ErrInvalid))
			return
		}

		id, err := v.Validate(raw)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth 在携带令牌时校验并附加身份；未携带时放行，携带无效令牌时仍然拒绝
func OptionalAuth(v Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present, err := bearerToken(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if present {
			id, err := v.Validate(raw)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireRoleMiddleware 必须放在 RequireAuth 之后
func RequireRoleMiddleware(required Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			apperr.Respond(c, fmt.Errorf("%w: 未认证", apperr.ErrInvalid))
			return
		}
		if err := RequireRole(id, required); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Next()
	}
}

// IdentityFrom 读取中间件写入的身份
func IdentityFrom(c *gin.Context) (token.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return token.Identity{}, false
	}
	id, ok := v.(token.Identity)
	return id, ok
}
