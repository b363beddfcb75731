package team

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler 创建队伍接口，maxBytes 限制球衣图片大小
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// ListTeams 获取全部队伍，国家字段按当前国家数据回填
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListCountryTeams 获取某国家下的队伍
func (h *Handler) ListCountryTeams(c *gin.Context) {
	teams, err := h.svc.ListByCountry(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(c *gin.Context) {
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

func (h *Handler) UpdateTeam(c *gin.Context) {
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

func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "队伍已删除"})
}

// UploadShirt 接收 multipart 表单中的 file 字段
func (h *Handler) UploadShirt(c *gin.Context) {
	if h.maxBytes > 0 {
		// 预留表单其余部分的开销
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+64<<10)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		apperr.Respond(c, fmt.Errorf("%w: 缺少上传文件: %v", apperr.ErrValidation, err))
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		apperr.Respond(c, fmt.Errorf("%w: 文件必须是图片", apperr.ErrValidation))
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		apperr.Respond(c, fmt.Errorf("%w: 文件超过 %d 字节", apperr.ErrValidation, h.maxBytes))
		return
	}

	url, err := h.svc.UploadShirt(c.Request.Context(), c.Param("id"), fh.Filename, func(dst string) error {
		return c.SaveUploadedFile(fh, dst)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shirt_design_url": url})
}
