package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Sentry        SentryConfig        `mapstructure:"sentry"`
	Tracing       TracingConfig       `mapstructure:"tracing"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Feed          FeedConfig          `mapstructure:"feed"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Log           LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address 返回监听地址
func (c ServerConfig) Address() string { return fmt.Sprintf(":%d", c.Port) }

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres, sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	ProfileTTL time.Duration `mapstructure:"profile_ttl"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type StorageConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

// NotificationsConfig 通知扇出：async=true 时走本地队列异步落库
type NotificationsConfig struct {
	Async     bool `mapstructure:"async"`
	Workers   int  `mapstructure:"workers"`
	QueueSize int  `mapstructure:"queue_size"`
}

type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=blog port=5432 sslmode=disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.profile_ttl", 10*time.Minute)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("sentry.environment", "development")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.service_name", "blog-engine")

	v.SetDefault("storage.dir", "./uploads")
	v.SetDefault("storage.base_url", "/uploads")

	v.SetDefault("notifications.async", true)
	v.SetDefault("notifications.workers", 4)
	v.SetDefault("notifications.queue_size", 10000)

	v.SetDefault("feed.page_size", 10)

	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load 读取 config.yaml（可选）并叠加 BLOG_ 前缀的环境变量
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn is required")
	}
	if c.Feed.PageSize <= 0 {
		return errors.New("feed.page_size must be positive")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret is required")
	}
	return nil
}
