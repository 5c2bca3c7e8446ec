// Package metrics 基于Prometheus的指标
//
// 指标分三类：HTTP请求、借阅业务、缓存与熔断器。
// 所有指标通过promauto注册到默认Registry，由 /metrics 端点暴露。
// 记录函数内部会先调用InitMetrics，未显式初始化时（如单元测试）也可以直接使用。
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// IssuesCreatedTotal 借出总数
	IssuesCreatedTotal prometheus.Counter

	// BooksReturnedTotal 归还总数
	BooksReturnedTotal prometheus.Counter

	// IssuesDeletedTotal 借阅记录删除总数
	// 标签：compensated（true表示删除的是未归还记录，已补回可借数量）
	IssuesDeletedTotal *prometheus.CounterVec

	// LendingFailuresTotal 借阅流程失败数
	// 标签：op（issue/return/delete）、reason（not_found/capacity/already_returned/conflict/invalid/internal）
	LendingFailuresTotal *prometheus.CounterVec

	// LendingDuration 借阅流程耗时（含事务）
	LendingDuration *prometheus.HistogramVec

	// CacheRequestsTotal 图书缓存请求数
	// 标签：op（get/version/set/invalidate）、result（hit/miss/ok/stale/error/rejected）
	CacheRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 注册所有指标，可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)
		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		)
		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "Number of HTTP requests currently being served",
			},
		)

		IssuesCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_issues_created_total",
				Help: "Total number of books issued",
			},
		)
		BooksReturnedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_books_returned_total",
				Help: "Total number of books returned",
			},
		)
		IssuesDeletedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_issues_deleted_total",
				Help: "Total number of issue records deleted",
			},
			[]string{"compensated"},
		)
		LendingFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_failures_total",
				Help: "Lending operations that failed, by operation and reason",
			},
			[]string{"op", "reason"},
		)
		LendingDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_lending_duration_seconds",
				Help:    "Lending operation latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"op"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_book_cache_requests_total",
				Help: "Book cache requests by operation and result",
			},
			[]string{"op", "result"},
		)
		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
			},
			[]string{"name"},
		)
	})
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	InitMetrics()
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// TrackInProgress 正在处理的请求数+1，返回的函数-1
func TrackInProgress() func() {
	InitMetrics()
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// 借阅操作名（op标签）
const (
	OpIssue  = "issue"
	OpReturn = "return"
	OpDelete = "delete"
)

// ObserveLending 记录一次借阅操作的耗时与结果
func ObserveLending(op string, start time.Time, err error) {
	InitMetrics()
	LendingDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		LendingFailuresTotal.WithLabelValues(op, FailureReason(err)).Inc()
	}
}

// RecordIssueCreated 借出成功
func RecordIssueCreated() {
	InitMetrics()
	IssuesCreatedTotal.Inc()
}

// RecordBookReturned 归还成功
func RecordBookReturned() {
	InitMetrics()
	BooksReturnedTotal.Inc()
}

// RecordIssueDeleted 借阅记录已删除
func RecordIssueDeleted(compensated bool) {
	InitMetrics()
	IssuesDeletedTotal.WithLabelValues(strconv.FormatBool(compensated)).Inc()
}

// RecordCache 记录一次缓存请求
func RecordCache(op, result string) {
	InitMetrics()
	CacheRequestsTotal.WithLabelValues(op, result).Inc()
}

// SetCircuitBreakerState 更新熔断器状态（state取circuitbreaker.State的数值）
func SetCircuitBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// FailureReason 错误 → reason标签
func FailureReason(err error) string {
	switch {
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsCapacity(err):
		return "capacity"
	case apperrors.IsAlreadyReturned(err):
		return "already_returned"
	case apperrors.IsConflict(err):
		return "conflict"
	case apperrors.HTTPStatus(err) < 500:
		return "invalid"
	default:
		return "internal"
	}
}
