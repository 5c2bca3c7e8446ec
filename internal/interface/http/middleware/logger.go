package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/tracing"
)

// RequestIDHeader 请求ID响应头,客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// RequestLogger 请求日志中间件
//
// 1. 生成(或沿用)请求ID,写入响应头
// 2. 把带request_id的logger放进请求Context,后续各层用logger.FromContext取
// 3. 请求结束后记录方法、路由、状态码、耗时;超过slowThreshold记WARN
func RequestLogger(base *slog.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		log := base.With(slog.String("request_id", requestID))
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			log = log.With(slog.String("trace_id", traceID))
		}
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case slowThreshold > 0 && latency > slowThreshold:
			log.Warn("慢请求", attrs...)
		case c.Writer.Status() >= 500:
			log.Error("请求处理失败", attrs...)
		default:
			log.Info("请求完成", attrs...)
		}
	}
}
