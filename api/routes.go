package api

import (
	"net/http"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/SlpAus/mini-cup-backend/internal/platform/health"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metadata"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metrics"
	"github.com/SlpAus/mini-cup-backend/internal/stats"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	apiName    = "Mini Cup API"
	apiVersion = "1.0.0"
)

// Deps 汇集了注册路由所需的全部处理器
type Deps struct {
	Tokens     auth.Validator
	Status     *database.Status
	Countries  *country.Handler
	Teams      *team.Handler
	Games      *game.Handler
	Users      *user.Handler
	Stats      *stats.Handler
	Config     *metadata.Handler
	UploadsDir string
}

// NewEngine 创建带有CORS与指标中间件的Gin引擎
func NewEngine(cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Cors.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	return r
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, d Deps) {
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	if d.UploadsDir != "" {
		router.Static("/uploads", d.UploadsDir)
	}

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": apiName, "version": apiVersion})
		})
		api.GET("/health", health.Handler(d.Status))
		api.GET("/config", d.Config.GetGameConfig)

		api.GET("/countries", d.Countries.ListCountries)
		api.GET("/countries/:id/teams", d.Teams.ListCountryTeams)
		api.GET("/teams", d.Teams.ListTeams)
		api.GET("/leaderboard", d.Stats.GetLeaderboard)
		api.POST("/game/session", auth.OptionalAuth(d.Tokens), d.Games.CreateSession)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", d.Users.Register)
			authRoutes.POST("/login", d.Users.Login)
			authRoutes.GET("/me", auth.RequireAuth(d.Tokens), d.Users.Me)
		}

		admin := api.Group("/admin", auth.RequireAuth(d.Tokens), auth.RequireRoleMiddleware(auth.RoleAdmin))
		{
			admin.GET("/countries", d.Countries.ListCountries)
			admin.POST("/countries", d.Countries.CreateCountry)
			admin.PUT("/countries/:id", d.Countries.UpdateCountry)
			admin.DELETE("/countries/:id", d.Countries.DeleteCountry)

			admin.GET("/teams", d.Teams.ListTeams)
			admin.POST("/teams", d.Teams.CreateTeam)
			admin.PUT("/teams/:id", d.Teams.UpdateTeam)
			admin.DELETE("/teams/:id", d.Teams.DeleteTeam)
			admin.POST("/teams/:id/shirt", d.Teams.UploadShirt)

			admin.GET("/users", d.Users.ListUsers)
			admin.PUT("/users/:id", d.Users.UpdateUser)
			admin.DELETE("/users/:id", d.Users.DeleteUser)

			admin.GET("/config", d.Config.GetGameConfig)
			admin.PUT("/config", d.Config.UpdateGameConfig)
		}

		statsRoutes := api.Group("/stats", auth.RequireAuth(d.Tokens), auth.RequireRoleMiddleware(auth.RoleAdmin))
		{
			statsRoutes.GET("/teams", d.Stats.GetTeamStats)
			statsRoutes.GET("/daily", d.Stats.GetDailyStats)
			statsRoutes.GET("/monthly", d.Stats.GetMonthlyStats)
		}
	}
}
