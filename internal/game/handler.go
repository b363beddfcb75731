package game

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

// CreateSession 提交一局游戏的结果。携带有效令牌时以令牌中的用户为准。
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}

	var callerID string
	if id, ok := auth.IdentityFrom(c); ok {
		callerID = id.SubjectID
	}

	session, err := h.svc.CreateSession(c.Request.Context(), req, c.ClientIP(), callerID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
