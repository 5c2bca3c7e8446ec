package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Book   *handler.BookHandler
	Member *handler.MemberHandler
	Issue  *handler.IssueHandler
}

// New 创建Gin引擎并注册路由
//
// 中间件顺序:Recovery → Tracing → RequestLogger → Metrics → CORS
func New(cfg *config.Config, log *slog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(log, cfg.Server.SlowRequestThreshold),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档 http://localhost:8000/swagger/index.html
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", h.Book.CreateBook)
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.DELETE("/:id", h.Book.DeleteBook)
		}

		members := v1.Group("/members")
		{
			members.POST("", h.Member.CreateMember)
			members.GET("", h.Member.ListMembers)
			members.GET("/:id", h.Member.GetMember)
			members.DELETE("/:id", h.Member.DeleteMember)
		}

		issues := v1.Group("/issues")
		{
			issues.POST("", h.Issue.IssueBook)
			issues.GET("", h.Issue.ListIssues)
			issues.GET("/:id", h.Issue.GetIssue)
			issues.POST("/:id/return", h.Issue.ReturnBook)
			issues.DELETE("/:id", h.Issue.DeleteIssue)
		}
	}

	return r
}
