package mysql

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，driver=mysql（默认）或postgres
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. auto_migrate=true时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 唯一索引冲突统一转换为gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("数据库连接成功",
		slog.String("driver", cfg.Database.Driver),
		slog.String("host", cfg.Database.Host),
		slog.String("dbname", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Migrate 迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&MemberModel{},
		&IssueModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,并发入库时由数据库保证不重复
// 2. 硬删除(不使用gorm.DeletedAt),否则软删除的记录会继续占用ISBN唯一索引
// 3. available_copies只通过UpdateAvailableCopies的条件更新修改
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:200;not null;comment:书名"`
	Author          string    `gorm:"size:100;not null;comment:作者"`
	Category        string    `gorm:"size:50;comment:分类"`
	ISBN            string    `gorm:"column:isbn;uniqueIndex;size:20;not null;comment:ISBN号"`
	TotalCopies     int       `gorm:"not null;default:0;comment:馆藏总数"`
	AvailableCopies int       `gorm:"not null;default:0;comment:可借数量"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MemberModel GORM会员模型
type MemberModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;comment:姓名"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Phone     string    `gorm:"size:20;comment:电话"`
	Status    string    `gorm:"size:20;not null;default:ACTIVE;comment:状态"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// IssueModel GORM借阅记录模型
// 设计说明:
// 1. book_id/member_id是外键,ON DELETE SET NULL:图书或会员删除后,已归还的记录保留,引用置空
// 2. 有未还借阅的图书/会员不能删除(用例层检查),所以置空的只会是已归还记录
// 3. return_date为NULL表示借出未还,与activeIssues作用域一致
// 4. Book/Member只用于声明外键,不做预加载
type IssueModel struct {
	ID         uint         `gorm:"primaryKey"`
	BookID     *uint        `gorm:"index;comment:图书ID(NULL表示图书已删除)"`
	Book       *BookModel   `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL"`
	MemberID   *uint        `gorm:"index;comment:会员ID(NULL表示会员已删除)"`
	Member     *MemberModel `gorm:"foreignKey:MemberID;constraint:OnDelete:SET NULL"`
	IssueDate  time.Time    `gorm:"type:date;not null;comment:借出日期"`
	DueDate    time.Time    `gorm:"type:date;not null;comment:应还日期"`
	ReturnDate *time.Time   `gorm:"type:date;index;comment:归还日期(NULL表示未还)"`
	CreatedAt  time.Time    `gorm:"comment:创建时间"`
	UpdatedAt  time.Time    `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (IssueModel) TableName() string {
	return "issues"
}
