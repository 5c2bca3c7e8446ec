package member

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/logger"
)

// DeleteMemberUseCase 删除会员用例
// 会员行加锁后再统计未归还借阅,与借书用例互斥
type DeleteMemberUseCase struct {
	memberRepo member.Repository
	issueRepo  issue.Repository
	txManager  *mysql.TxManager
}

// NewDeleteMemberUseCase 创建删除会员用例
func NewDeleteMemberUseCase(
	memberRepo member.Repository,
	issueRepo issue.Repository,
	txManager *mysql.TxManager,
) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{
		memberRepo: memberRepo,
		issueRepo:  issueRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除
func (uc *DeleteMemberUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.memberRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		active, err := uc.issueRepo.CountActiveByMember(txCtx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return member.ErrMemberHasActiveIssues
		}

		return uc.memberRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("会员已删除", slog.Uint64("member_id", uint64(id)))
	return nil
}
