// Package repotest 为测试打开一个迁移好的内存 sqlite。
package repotest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"restaurant-admin/internal/core/database"
	"restaurant-admin/internal/domain"
)

var seq atomic.Int64

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1)),
		MaxOpenConns: 1, // 内存库 + 并发查询，串行化避免 table locked
		MaxIdleConns: 1,
		LogLevel:     "silent",
		Logger:       zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
