//go:build wireinject
// +build wireinject

// Wire依赖注入声明,生成: wire gen ./cmd/api
// 生成的wire_gen.go与app.go中buildApp手动组装的依赖图一致

package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/library/internal/application/book"
	appissue "github.com/xiebiao/library/internal/application/issue"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// infrastructureSet 数据库、缓存、时钟
var infrastructureSet = wire.NewSet(
	provideDB,
	provideDBLocation,
	provideBookCache,
	provideClock,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewMemberRepository,
	mysql.NewIssueRepository,
	mysql.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	member.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewDeleteBookUseCase,
	appmember.NewRegisterMemberUseCase,
	appmember.NewGetMemberUseCase,
	appmember.NewListMembersUseCase,
	appmember.NewDeleteMemberUseCase,
	appissue.NewIssueBookUseCase,
	appissue.NewReturnBookUseCase,
	appissue.NewDeleteIssueUseCase,
	appissue.NewGetIssueUseCase,
	appissue.NewListIssuesUseCase,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewIssueHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装Gin引擎,cleanup关闭数据库和Redis连接
func InitializeApp(cfg *config.Config, log *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
