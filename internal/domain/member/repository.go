package member

import (
	"context"
)

// Repository 会员仓储接口
// 具体实现在infrastructure/persistence/mysql层
type Repository interface {
	// Create 创建会员,邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, m *Member) error

	// FindByID 根据ID查找会员,不存在返回ErrMemberNotFound
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByEmail 根据邮箱查找会员
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// List 按ID升序返回全部会员
	List(ctx context.Context) ([]*Member, error)

	// Delete 删除会员(硬删除)
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询会员(借书、删除会员时使用)
	LockByID(ctx context.Context, id uint) (*Member, error)
}
