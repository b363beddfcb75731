// Package apperr 定义了服务层向路由层报告的错误种类，以及它们到HTTP状态码的映射。
package apperr

import (
	"errors"
	"net/http"

	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrValidation  = errors.New("请求参数无效")
	ErrNotFound    = errors.New("资源不存在")
	ErrConflict    = errors.New("资源冲突")
	ErrInvalid     = errors.New("认证失败")
	ErrExpired     = errors.New("令牌已过期")
	ErrForbidden   = errors.New("权限不足")
	ErrRateLimited = errors.New("请求过于频繁")
	ErrUnavailable = errors.New("服务暂时不可用，请稍后重试")
)

// Status 返回错误对应的HTTP状态码，未知错误为500
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrExpired), errors.Is(err, token.ErrExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalid), errors.Is(err, token.ErrInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond 将错误写成 {"error": "..."} 响应并中止后续处理
func Respond(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		// 内部错误只记录日志，不把细节返回给客户端
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("请求处理失败")
		c.AbortWithStatusJSON(status, gin.H{"error": "服务器内部错误"})
		return
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
