package country

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListCountries 获取全部国家（公开接口与管理接口共用）
func (h *Handler) ListCountries(c *gin.Context) {
	countries, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *Handler) CreateCountry(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) UpdateCountry(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteCountry(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "国家已删除"})
}
