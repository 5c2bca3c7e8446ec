// Package dbtest 为仓储、用例和HTTP测试提供内存SQLite数据库
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
)

// New 创建独立的内存数据库并完成迁移
// 每个测试一个库(名称随机),单连接保证事务内外看到同一份数据
func New(t testing.TB) *gorm.DB {
	t.Helper()

	// _foreign_keys=on:SQLite默认不检查外键,需要显式打开才会执行ON DELETE SET NULL
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开sqlite失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取SQL DB失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := mysql.Migrate(db); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}
