package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("book cache miss")

// versionKeyTTL 版本号的过期时间,每次失效时刷新
const versionKeyTTL = 24 * time.Hour

// BookCache 图书详情缓存（Cache-Aside）
//
// 1. 先查缓存，未命中时先取版本号，再查数据库并按版本号回填
// 2. 可借数量变化或图书删除后（事务提交后）删除缓存并递增版本号
// 3. 回填时版本号已变化说明读库期间发生过失效，丢弃这次回填，避免旧数据写回
// 4. 所有Redis调用经过熔断器：Redis故障时快速失败，调用方直接读库
type BookCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	breaker := circuitbreaker.NewCircuitBreaker("redis-book-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		// 未命中不是故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
	return &BookCache{client: client, ttl: ttl, breaker: breaker}
}

// bookEntry 缓存中的JSON结构
type bookEntry struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	ISBN            string    `json:"isbn"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Get 读取图书详情，未命中返回ErrCacheMiss
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	var val []byte
	err := c.breaker.Execute(func() error {
		var err error
		val, err = c.client.Get(ctx, bookKey(id)).Bytes()
		return err
	})
	switch {
	case errors.Is(err, redis.Nil):
		metrics.RecordCache("get", "miss")
		return nil, ErrCacheMiss
	case err != nil:
		metrics.RecordCache("get", resultOf(err))
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "获取缓存失败")
	}

	var e bookEntry
	if err := json.Unmarshal(val, &e); err != nil {
		metrics.RecordCache("get", "error")
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "缓存数据反序列化失败")
	}
	metrics.RecordCache("get", "hit")

	return &book.Book{
		ID:              e.ID,
		Title:           e.Title,
		Author:          e.Author,
		Category:        e.Category,
		ISBN:            e.ISBN,
		TotalCopies:     e.TotalCopies,
		AvailableCopies: e.AvailableCopies,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}, nil
}

// Version 读取图书缓存的版本号,从未失效过为0
// 查库前调用,结果传给Set
func (c *BookCache) Version(ctx context.Context, id uint) (int64, error) {
	var ver int64
	err := c.breaker.Execute(func() error {
		var err error
		ver, err = c.client.Get(ctx, versionKey(id)).Int64()
		return err
	})
	switch {
	case errors.Is(err, redis.Nil):
		metrics.RecordCache("version", "ok")
		return 0, nil
	case err != nil:
		metrics.RecordCache("version", resultOf(err))
		return 0, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "获取缓存版本失败")
	}
	metrics.RecordCache("version", "ok")
	return ver, nil
}

// Set 按版本号回填图书详情
// WATCH版本号key:当前版本与version不一致,或提交前被Invalidate修改,都放弃写入并返回nil
func (c *BookCache) Set(ctx context.Context, b *book.Book, version int64) error {
	val, err := json.Marshal(bookEntry{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	})
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "缓存数据序列化失败")
	}

	verKey := versionKey(b.ID)
	var stale bool
	err = c.breaker.Execute(func() error {
		err := c.client.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.Get(ctx, verKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if cur != version {
				stale = true
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, bookKey(b.ID), val, c.ttl)
				return nil
			})
			return err
		}, verKey)
		if errors.Is(err, redis.TxFailedErr) {
			stale = true
			return nil
		}
		return err
	})
	if stale {
		metrics.RecordCache("set", "stale")
		return nil
	}
	metrics.RecordCache("set", resultOf(err))
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "设置缓存失败")
	}
	return nil
}

// Invalidate 删除图书详情缓存并递增版本号
func (c *BookCache) Invalidate(ctx context.Context, id uint) error {
	err := c.breaker.Execute(func() error {
		_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, bookKey(id))
			pipe.Incr(ctx, versionKey(id))
			pipe.Expire(ctx, versionKey(id), versionKeyTTL)
			return nil
		})
		return err
	})
	metrics.RecordCache("invalidate", resultOf(err))
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "删除缓存失败")
	}
	return nil
}

// BreakerState 熔断器当前状态
func (c *BookCache) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

func bookKey(id uint) string {
	return fmt.Sprintf("library:book:%d", id)
}

func versionKey(id uint) string {
	return fmt.Sprintf("library:book:ver:%d", id)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, circuitbreaker.ErrOpenState):
		return "rejected"
	default:
		return "error"
	}
}
