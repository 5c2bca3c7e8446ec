package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP指标中间件
// path标签用路由模板(c.FullPath),避免/books/1、/books/2各占一个时间序列
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.TrackInProgress()
		defer done()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
