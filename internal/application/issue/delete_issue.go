package issue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	bookapp "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// DeleteIssueUseCase 删除借阅记录用例
// 删除未归还的记录等同于"撤销借出",需要补回图书的可借数量
type DeleteIssueUseCase struct {
	issueRepo issue.Repository
	bookRepo  book.Repository
	txManager *mysql.TxManager
	cache     book.Cache
}

// NewDeleteIssueUseCase 创建删除借阅记录用例
func NewDeleteIssueUseCase(
	issueRepo issue.Repository,
	bookRepo book.Repository,
	txManager *mysql.TxManager,
	cache book.Cache,
) *DeleteIssueUseCase {
	return &DeleteIssueUseCase{
		issueRepo: issueRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
	}
}

// Execute 执行删除
func (uc *DeleteIssueUseCase) Execute(ctx context.Context, issueID uint) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "issue.DeleteIssue", trace.WithAttributes(
		attribute.Int64("issue_id", int64(issueID)),
	))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLending(metrics.OpDelete, start, err)
	}()

	var (
		rec         *issue.IssueRecord
		bookID      uint
		compensated bool
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = uc.issueRepo.LockByID(txCtx, issueID)
		if err != nil {
			return err
		}

		// 图书已删除(book_id为NULL)时没有可补回的对象
		var ok bool
		bookID, ok = rec.BookRef()
		if ok && rec.NeedsCompensation() {
			err := uc.bookRepo.UpdateAvailableCopies(txCtx, bookID, 1)
			switch {
			case err == nil:
				compensated = true
			case !errors.Is(err, book.ErrBookNotFound):
				return err
			}
		}

		return uc.issueRepo.Delete(txCtx, rec.ID)
	})
	if err != nil {
		return err
	}

	if compensated {
		bookapp.InvalidateCache(ctx, uc.cache, bookID)
	}
	metrics.RecordIssueDeleted(compensated)
	logger.FromContext(ctx).Info("借阅记录已删除",
		slog.Uint64("issue_id", uint64(rec.ID)),
		slog.Uint64("book_id", uint64(bookID)),
		slog.Bool("was_active", rec.IsActive()),
		slog.Bool("compensated", compensated),
	)
	return nil
}
