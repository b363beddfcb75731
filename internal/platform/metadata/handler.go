package metadata

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// GetGameConfig 公开接口与管理接口共用
func (h *Handler) GetGameConfig(c *gin.Context) {
	cfg, err := h.store.GameConfig(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateGameConfig(c *gin.Context) {
	var cfg GameConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}
	if err := h.store.SetGameConfig(c.Request.Context(), cfg); err != nil {
		apperr.Respond(c, err)
		return
	}
	log.Info().Interface("config", cfg).Msg("游戏配置已更新")
	c.JSON(http.StatusOK, cfg)
}
