package issue

import (
	"context"
	"time"
)

// Repository 借阅记录仓储接口
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, r *IssueRecord) error

	// FindByID 根据ID查找,不存在返回ErrIssueNotFound
	FindByID(ctx context.Context, id uint) (*IssueRecord, error)

	// LockByID 悲观锁查询(归还、删除时使用,防止重复归还)
	LockByID(ctx context.Context, id uint) (*IssueRecord, error)

	// List 按ID升序返回全部借阅记录
	List(ctx context.Context) ([]*IssueRecord, error)

	// MarkReturned 写入归还日期
	// 条件更新:只更新return_date为空的记录,已归还返回ErrAlreadyReturned
	MarkReturned(ctx context.Context, id uint, returnDate time.Time) error

	// Delete 删除借阅记录
	Delete(ctx context.Context, id uint) error

	// CountActiveByBook 统计某本书未归还的借阅数
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)

	// CountActiveByMember 统计某会员未归还的借阅数
	CountActiveByMember(ctx context.Context, memberID uint) (int64, error)
}
