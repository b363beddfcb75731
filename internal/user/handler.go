package user

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me 返回当前登录的用户，必须挂在 RequireAuth 之后
func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		apperr.Respond(c, fmt.Errorf("%w: 未认证", apperr.ErrInvalid))
		return
	}
	u, err := h.svc.Me(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), id.SubjectID); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "用户已删除"})
}
