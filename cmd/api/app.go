package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/library/internal/application/book"
	appissue "github.com/xiebiao/library/internal/application/issue"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/logger"
)

// buildApp 手动依赖注入(与wire.go声明的依赖图一致)
// Repository ← Service ← UseCase ← Handler ← Router
func buildApp(cfg *config.Config, log *slog.Logger) (*gin.Engine, func(), error) {
	db, closeDB, err := provideDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	loc, err := provideDBLocation(cfg)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	cache, closeCache := provideBookCache(cfg, log)
	cleanup := func() {
		closeCache()
		closeDB()
	}

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	bookRepo := mysql.NewBookRepository(db)
	memberRepo := mysql.NewMemberRepository(db)
	issueRepo := mysql.NewIssueRepository(db, loc)

	// 领域层
	bookService := book.NewService(bookRepo)
	memberService := member.NewService(memberRepo)

	// 应用层 + 接口层
	handlers := router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService),
			appbook.NewGetBookUseCase(bookService, cache),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewDeleteBookUseCase(bookRepo, issueRepo, txManager, cache),
		),
		Member: handler.NewMemberHandler(
			appmember.NewRegisterMemberUseCase(memberService),
			appmember.NewGetMemberUseCase(memberService),
			appmember.NewListMembersUseCase(memberService),
			appmember.NewDeleteMemberUseCase(memberRepo, issueRepo, txManager),
		),
		Issue: handler.NewIssueHandler(
			appissue.NewIssueBookUseCase(bookRepo, memberRepo, issueRepo, txManager, cache),
			appissue.NewReturnBookUseCase(issueRepo, bookRepo, txManager, cache, provideClock()),
			appissue.NewDeleteIssueUseCase(issueRepo, bookRepo, txManager, cache),
			appissue.NewGetIssueUseCase(issueRepo),
			appissue.NewListIssuesUseCase(issueRepo),
		),
	}

	return router.New(cfg, log, handlers), cleanup, nil
}

func provideLogger(cfg *config.Config) (*slog.Logger, error) {
	return logger.New(cfg.Log.Options())
}

func provideDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { closeDB(db, log) }, nil
}

// provideDBLocation 日期列按数据库连接的时区写入
func provideDBLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Database.Location()
}

func provideClock() appissue.Clock {
	return time.Now
}

// provideBookCache 未启用或Redis连不上时返回nil,图书查询直接走数据库
func provideBookCache(cfg *config.Config, log *slog.Logger) (book.Cache, func()) {
	if !cfg.Redis.Enabled {
		return nil, func() {}
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		log.Warn("Redis不可用,图书缓存已禁用", slog.Any("error", err))
		return nil, func() {}
	}
	return redis.NewBookCache(client, cfg.Redis.CacheTTL), func() {
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", slog.Any("error", err))
		}
	}
}

func closeDB(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		log.Warn("关闭数据库连接失败", slog.Any("error", err))
	}
}
