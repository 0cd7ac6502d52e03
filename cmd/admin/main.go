package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"restaurant-admin/internal/core/auth"
	"restaurant-admin/internal/core/config"
	"restaurant-admin/internal/core/database"
	"restaurant-admin/internal/core/logger"
	"restaurant-admin/internal/core/server"
	"restaurant-admin/internal/core/upload"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repo"
	"restaurant-admin/internal/service"
	"restaurant-admin/internal/transport/http/flash"
	"restaurant-admin/internal/transport/http/handler"
	"restaurant-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log, cleanup := newLogger(cfg)
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	if strings.EqualFold(cfg.App.Env, "prod") {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(domain.Models()...); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 图床
	up, err := upload.New(upload.Options{
		Provider:      cfg.Upload.Provider,
		ImgurClientID: cfg.Upload.ImgurClientID,
		ImgurEndpoint: cfg.Upload.ImgurEndpoint,
		LocalDir:      cfg.Upload.LocalDir,
		PublicPrefix:  cfg.Upload.PublicPrefix,
		Timeout:       time.Duration(cfg.Upload.TimeoutSec) * time.Second,
	})
	if err != nil {
		log.Fatal("uploader", zap.Error(err))
	}
	uploadDir := ""
	if cfg.Upload.Provider == "local" {
		uploadDir = cfg.Upload.LocalDir
	}

	fs, closeFlash := mustFlashStore(cfg, log)
	defer closeFlash()

	// 依赖
	var jwter *auth.JWTer
	if cfg.Admin.RequireAuth {
		if cfg.JWT.Secret == "" {
			log.Fatal("admin.requireAuth needs jwt.secret")
		}
		jwter = &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		}
	}
	restaurantRepo := repo.NewRestaurantRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)
	userRepo := repo.NewUserRepo(db)

	modules := &router.Registry{}
	modules.Register(
		handler.NewRestaurantHandler(service.NewRestaurantService(restaurantRepo, categoryRepo, up, log.Named("restaurant"))),
		handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, log.Named("category"))),
		handler.NewUserHandler(service.NewUserService(userRepo, cfg.Admin.ProtectedEmail, log.Named("user"))),
	)

	h := router.NewAdminHandler(router.Options{
		Log:   log,
		JWT:   jwter,
		Flash: fs,
		Limits: router.Limits{
			RPS:         cfg.Limits.RPS,
			Burst:       cfg.Limits.Burst,
			Concurrency: cfg.Limits.Concurrency,
			MaxBody:     cfg.Limits.MaxBodyMB << 20,
			Timeout:     time.Duration(cfg.Limits.TimeoutSec) * time.Second,
		},
		UploadDir: uploadDir,
		Modules:   modules,
	})

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, h,
		time.Duration(cfg.App.Admin.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.Admin.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.Admin.IdleTimeoutSec)*time.Second,
	)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin starting",
		zap.String("addr", addr),
		zap.String("open", baseURL+router.AdminHome),
		zap.String("health", baseURL+"/health"),
		zap.String("upload", cfg.Upload.Provider),
		zap.String("flash", cfg.Flash.Store),
		zap.Bool("auth", jwter != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("admin stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.File))
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

// mustFlashStore cookie 为默认；redis 需要能 Ping 通
func mustFlashStore(cfg *config.Config, l *zap.Logger) (flash.Store, func()) {
	switch cfg.Flash.Store {
	case "", "cookie":
		return flash.NewCookieStore(cfg.Flash.CookieName, cfg.Flash.TTLSec), func() {}
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			l.Fatal("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		return flash.NewRedisStore(rdb, cfg.Flash.CookieName, time.Duration(cfg.Flash.TTLSec)*time.Second),
			func() { _ = rdb.Close() }
	default:
		l.Fatal("unknown flash store", zap.String("store", cfg.Flash.Store))
		return nil, nil
	}
}
