package health

import (
	"net/http"

	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// Handler 返回健康检查接口。数据库不可用时由具体业务接口报错，这里只报告进程存活和Redis状态。
func Handler(status *database.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"redis":  status.State(),
		})
	}
}
