package stats

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// queryInt 读取整数查询参数，缺省时返回 def
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s 必须是整数", apperr.ErrValidation, name)
	}
	return v, nil
}

// GetLeaderboard 公开的排行榜
func (h *Handler) GetLeaderboard(c *gin.Context) {
	entries, err := h.svc.Leaderboard(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetTeamStats(c *gin.Context) {
	st, err := h.svc.TeamStats(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) GetDailyStats(c *gin.Context) {
	days, err := queryInt(c, "days", DefaultDays)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	st, err := h.svc.Daily(c.Request.Context(), days)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) GetMonthlyStats(c *gin.Context) {
	months, err := queryInt(c, "months", DefaultMonths)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	st, err := h.svc.Monthly(c.Request.Context(), months)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
