// seed 建表并写入默认分类和账号；后台开启登录校验时顺便签一个管理员 token。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restaurant-admin/internal/core/auth"
	"restaurant-admin/internal/core/config"
	"restaurant-admin/internal/core/database"
	"restaurant-admin/internal/core/logger"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repo"
	"restaurant-admin/pkg/utils"
)

var defaultCategories = []string{"中式料理", "日本料理", "義大利料理", "墨西哥料理", "素食料理", "美式料理", "複合式料理"}

type seedUser struct {
	Email, Name string
	IsAdmin     bool
}

func main() {
	password := flag.String("password", "12345678", "password for seeded accounts")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seedCategories(ctx, db); err != nil {
		log.Fatal("seed categories", zap.Error(err))
	}
	root, err := seedUsers(ctx, repo.NewUserRepo(db), *password, cfg.Admin.ProtectedEmail)
	if err != nil {
		log.Fatal("seed users", zap.Error(err))
	}
	log.Info("seed done", zap.String("root", root.Email))

	if cfg.JWT.Secret == "" {
		return
	}
	j := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	tok, err := j.Issue(strconv.FormatUint(uint64(root.ID), 10), root.Role())
	if err != nil {
		log.Fatal("issue token", zap.Error(err))
	}
	// 浏览器里设成 access_token cookie，或者作为 Bearer 头
	fmt.Println(tok)
}

// seedCategories 表里已有数据就跳过
func seedCategories(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	cs := make([]domain.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		cs = append(cs, domain.Category{Name: name})
	}
	return db.WithContext(ctx).Create(&cs).Error
}

// seedUsers 按 email 幂等；返回受保护的 root 账号
func seedUsers(ctx context.Context, users domain.UserRepository, password, rootEmail string) (*domain.User, error) {
	list := []seedUser{
		{Email: rootEmail, Name: "root", IsAdmin: true},
		{Email: "user1@example.com", Name: "user1"},
		{Email: "user2@example.com", Name: "user2"},
	}
	var root *domain.User
	for _, su := range list {
		u, err := users.FindByEmail(ctx, su.Email)
		if err != nil {
			return nil, err
		}
		if u == nil {
			hash, err := utils.HashPassword(password)
			if err != nil {
				return nil, err
			}
			u = &domain.User{Email: su.Email, Name: su.Name, PasswordHash: hash, IsAdmin: su.IsAdmin}
			if err := users.Create(ctx, u); err != nil {
				return nil, fmt.Errorf("create %s: %w", su.Email, err)
			}
		}
		if su.Email == rootEmail {
			root = u
		}
	}
	return root, nil
}
