package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都从ctx中获取事务(如有),保证同一用例内读写在一个事务中
type Repository interface {
	// Create 创建图书,ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// List 按ID升序返回全部图书
	List(ctx context.Context) ([]*Book, error)

	// Delete 删除图书(硬删除)
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书
	// SELECT ... FOR UPDATE,必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateAvailableCopies 原子调整可借数量
	// delta为正数表示归还,负数表示借出
	// 调整后超出[0, TotalCopies]时不修改,返回ErrNoCopiesAvailable(借出)或ErrCopyCountOverflow(归还)
	UpdateAvailableCopies(ctx context.Context, id uint, delta int) error
}

// Cache 图书详情缓存(读穿透)
// 缓存不可用时调用方降级为直接读库,所以实现返回的错误只用于记录日志
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)

	// Version 当前版本号,每次Invalidate递增;查库前读取
	Version(ctx context.Context, id uint) (int64, error)

	// Set 回填,版本号已不是version时放弃写入(读库期间数据被修改过)
	Set(ctx context.Context, b *Book, version int64) error

	Invalidate(ctx context.Context, id uint) error
}
