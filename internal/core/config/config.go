package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AdminHTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name  string
	Env   string
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	SlowThresholdMs    int
}

// Upload provider: imgur | local
type Upload struct {
	Provider      string
	ImgurClientID string
	ImgurEndpoint string
	LocalDir      string
	PublicPrefix  string
	TimeoutSec    int
}

// Flash store: cookie | redis
type Flash struct {
	Store      string
	CookieName string
	TTLSec     int
}

type Admin struct {
	ProtectedEmail string
	RequireAuth    bool
}

type Limits struct {
	RPS         float64
	Burst       int
	Concurrency int64
	MaxBodyMB   int64
	TimeoutSec  int
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Upload Upload
	Flash  Flash
	Admin  Admin
	Limits Limits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "restaurant-admin")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.admin.readTimeoutSec", 5)
	v.SetDefault("app.admin.writeTimeoutSec", 15)
	v.SetDefault("app.admin.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")

	v.SetDefault("jwt.issuer", "restaurant-admin")
	v.SetDefault("jwt.accessTokenTTLMin", 120)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "restaurant.db")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("upload.provider", "local")
	v.SetDefault("upload.imgurEndpoint", "https://api.imgur.com/3/image")
	v.SetDefault("upload.localDir", "upload")
	v.SetDefault("upload.publicPrefix", "/upload")
	v.SetDefault("upload.timeoutSec", 15)

	v.SetDefault("flash.store", "cookie")
	v.SetDefault("flash.cookieName", "flash")
	v.SetDefault("flash.ttlSec", 300)

	v.SetDefault("admin.protectedEmail", "root@example.com")

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.concurrency", 300)
	v.SetDefault("limits.maxBodyMB", 16)
	v.SetDefault("limits.timeoutSec", 10)
}

// Load 读取 YAML；path 为空时用 CONFIG_PATH 或默认路径。APP_ 前缀的环境变量优先。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = "./configs/config.local.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
