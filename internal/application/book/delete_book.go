package book

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/logger"
)

// DeleteBookUseCase 删除图书用例
// 存在未归还的借阅记录时拒绝删除;已归还的记录保留(book_id不再指向任何图书)
type DeleteBookUseCase struct {
	bookRepo  book.Repository
	issueRepo issue.Repository
	txManager *mysql.TxManager
	cache     book.Cache
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	issueRepo issue.Repository,
	txManager *mysql.TxManager,
	cache book.Cache,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:  bookRepo,
		issueRepo: issueRepo,
		txManager: txManager,
		cache:     cache,
	}
}

// Execute 执行删除
//  1. SELECT FOR UPDATE 锁定图书行(与借书互斥)
//  2. 统计未归还借阅,>0 则返回ErrBookHasActiveIssues
//  3. 删除图书,提交后删除缓存
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		active, err := uc.issueRepo.CountActiveByBook(txCtx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return book.ErrBookHasActiveIssues
		}

		return uc.bookRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	InvalidateCache(ctx, uc.cache, id)
	logger.FromContext(ctx).Info("图书已删除", slog.Uint64("book_id", uint64(id)))
	return nil
}
