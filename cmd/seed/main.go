package main

import (
	"context"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/SlpAus/mini-cup-backend/internal/platform/logging"
	"github.com/SlpAus/mini-cup-backend/internal/platform/startup"
	"github.com/SlpAus/mini-cup-backend/internal/seed"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("无法加载配置")
	}
	logging.Setup(cfg.Log)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("数据库初始化失败")
	}
	if err := startup.InitializeApplication(db); err != nil {
		log.Fatal().Err(err).Msg("应用初始化失败")
	}

	// 只用于建号，不需要签发令牌
	users := user.NewService(db, user.NewRepository(db), auth.NewPasswordHasher(cfg.Auth.BcryptCost), nil)
	res, err := seed.Run(context.Background(), db, users, seed.DefaultAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("写入初始数据失败")
	}
	if res.AdminCreated {
		log.Info().Str("email", seed.DefaultAdmin.Email).Msg("已创建默认管理员，请尽快修改密码")
	} else {
		log.Warn().Msg("管理员账号已存在，跳过")
	}
}
