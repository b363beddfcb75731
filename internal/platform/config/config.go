package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Game     GameConfig     `mapstructure:"game"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode           string        `mapstructure:"mode"`
	Address        string        `mapstructure:"address"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	Cors           CorsConfig    `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了持久化存储的配置
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置，Address为空表示不启用Redis
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled 报告是否配置了Redis
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// AuthConfig 定义了令牌签名与密码哈希的配置
type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"`
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// UploadsConfig 定义了球衣图片上传的配置
type UploadsConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"maxBytes"`
}

type GameConfig struct {
	PlayLimit PlayLimitConfig `mapstructure:"playLimit"`
}

// PlayLimitConfig 定义了按IP限制游戏次数的滑动窗口
type PlayLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	MaxPlays int64         `mapstructure:"maxPlays"`
	Window   time.Duration `mapstructure:"window"`
}

// BackupConfig 定义了SQLite定时备份的配置
type BackupConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Dir      string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.requestTimeout", 30*time.Second)
	v.SetDefault("server.cors.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "minicup.db")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.tokenTTL", 30*time.Minute)
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.maxBytes", 5<<20)

	v.SetDefault("game.playLimit.enabled", false)
	v.SetDefault("game.playLimit.maxPlays", 100)
	v.SetDefault("game.playLimit.window", 24*time.Hour)

	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.schedule", "@every 10m")
	v.SetDefault("backup.dir", "backups")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件，找不到时只使用默认值和环境变量
func LoadConfig() (*Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 AUTH_SECRET=xxx
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// 4. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 5. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return errors.New("database.driver 只能是 sqlite 或 postgres")
	}
	if c.Auth.TokenTTL < time.Second {
		return errors.New("auth.tokenTTL 不能少于1秒")
	}
	if c.Game.PlayLimit.Enabled && (c.Game.PlayLimit.MaxPlays <= 0 || c.Game.PlayLimit.Window <= 0) {
		return errors.New("game.playLimit 的 maxPlays 与 window 必须为正")
	}
	return nil
}
