package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/SlpAus/mini-cup-backend/api"
	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/backup"
	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/SlpAus/mini-cup-backend/internal/platform/health"
	"github.com/SlpAus/mini-cup-backend/internal/platform/logging"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metadata"
	"github.com/SlpAus/mini-cup-backend/internal/platform/shutdown"
	"github.com/SlpAus/mini-cup-backend/internal/platform/startup"
	"github.com/SlpAus/mini-cup-backend/internal/stats"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/SlpAus/mini-cup-backend/pkg/lifecycle"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. 配置与日志
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("无法加载配置")
	}
	logging.Setup(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	// 2. 存储
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("数据库初始化失败")
	}
	if err := startup.InitializeApplication(db); err != nil {
		log.Fatal().Err(err).Msg("应用初始化失败，无法启动")
	}

	rdb, err := database.OpenRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis初始化失败")
	}
	status := database.NewStatus(rdb != nil)

	// 3. 令牌密钥
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		secret, err = token.GenerateSecret()
		if err != nil {
			log.Fatal().Err(err).Msg("无法生成签名密钥")
		}
		log.Warn().Msg("未配置 auth.secret，已生成随机密钥，重启后已签发的令牌将失效")
	}
	tokens, err := token.NewManager(secret, cfg.Auth.TokenTTL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("无法创建令牌管理器")
	}

	// 4. 业务模块
	clock := clockwork.NewRealClock()
	countryRepo := country.NewRepository(db)
	teamRepo := team.NewRepository(db)
	gameRepo := game.NewRepository(db)
	userRepo := user.NewRepository(db)

	var limiter game.Limiter
	if rdb != nil && cfg.Game.PlayLimit.Enabled {
		limiter = game.NewPlayLimiter(rdb, status, cfg.Game.PlayLimit)
	}

	teamSvc := team.NewService(db, teamRepo, countryRepo, gameRepo, cfg.Uploads.Dir)
	deps := api.Deps{
		Tokens:     tokens,
		Status:     status,
		Countries:  country.NewHandler(country.NewService(db, countryRepo, teamRepo)),
		Teams:      team.NewHandler(teamSvc, cfg.Uploads.MaxBytes),
		Games:      game.NewHandler(game.NewService(db, gameRepo, teamRepo, limiter, clock)),
		Users:      user.NewHandler(user.NewService(db, userRepo, auth.NewPasswordHasher(cfg.Auth.BcryptCost), tokens)),
		Stats:      stats.NewHandler(stats.NewService(stats.NewSource(teamRepo, countryRepo, gameRepo), clock)),
		Config:     metadata.NewHandler(metadata.NewStore(db)),
		UploadsDir: cfg.Uploads.Dir,
	}

	// 5. 后台服务
	gracefulMgr := lifecycle.NewManager("graceful")
	forcefulMgr := lifecycle.NewManager("forceful")
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)

	if rdb != nil {
		checker := health.NewChecker(health.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}), status)
		// 阻塞式执行一次启动后健康检查
		checker.PerformCheck(context.Background())

		handle, err := gracefulMgr.NewServiceHandle("redis-health")
		if err != nil {
			log.Fatal().Err(err).Msg("无法注册健康检查器")
		}
		go checker.Run(handle)

		coordinator.OnFinal("redis-close", func(context.Context) error {
			return rdb.Close()
		})
	}

	if cfg.Backup.Enabled {
		backuper := backup.New(db, cfg.Backup.Dir, clock)
		if !backuper.Supported() {
			log.Warn().Str("driver", cfg.Database.Driver).Msg("当前数据库不支持文件备份，已跳过备份调度器")
		} else {
			handle, err := gracefulMgr.NewServiceHandle("backup")
			if err != nil {
				log.Fatal().Err(err).Msg("无法注册备份调度器")
			}
			go func() {
				if err := backuper.Run(handle, cfg.Backup.Schedule); err != nil {
					log.Error().Err(err).Msg("备份调度器启动失败")
				}
			}()
			coordinator.OnFinal("final-backup", func(ctx context.Context) error {
				path, err := backuper.RunOnce(ctx)
				if err == nil {
					log.Info().Str("path", path).Msg("最终备份已写入")
				}
				return err
			})
		}
	}

	// 6. HTTP
	router := api.NewEngine(cfg.Server)
	api.SetupRoutes(router, deps)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
	}
	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("服务器已准备就绪，开始监听")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	coordinator.ListenForSignalsAndShutdown(server)
}
