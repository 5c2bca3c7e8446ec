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

// ReturnBookUseCase 还书用例
type ReturnBookUseCase struct {
	issueRepo issue.Repository
	bookRepo  book.Repository
	txManager *mysql.TxManager
	cache     book.Cache
	now       Clock
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	issueRepo issue.Repository,
	bookRepo book.Repository,
	txManager *mysql.TxManager,
	cache book.Cache,
	now Clock,
) *ReturnBookUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReturnBookUseCase{
		issueRepo: issueRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
		now:       now,
	}
}

// Execute 执行还书
//  1. 锁定借阅记录,已归还返回ErrAlreadyReturned(状态只能ACTIVE → RETURNED一次)
//  2. 归还日期取当天
//  3. 可借数量+1;图书已被删除时跳过
func (uc *ReturnBookUseCase) Execute(ctx context.Context, issueID uint) (resp *IssueResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "issue.ReturnBook", trace.WithAttributes(
		attribute.Int64("issue_id", int64(issueID)),
	))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLending(metrics.OpReturn, start, err)
	}()

	var (
		rec         *issue.IssueRecord
		bookID      uint
		bookMissing bool
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = uc.issueRepo.LockByID(txCtx, issueID)
		if err != nil {
			return err
		}
		if err := rec.MarkReturned(uc.now()); err != nil {
			return err
		}
		if err := uc.issueRepo.MarkReturned(txCtx, rec.ID, *rec.ReturnDate); err != nil {
			return err
		}

		var ok bool
		if bookID, ok = rec.BookRef(); !ok {
			bookMissing = true
			return nil
		}
		err = uc.bookRepo.UpdateAvailableCopies(txCtx, bookID, 1)
		if errors.Is(err, book.ErrBookNotFound) {
			bookMissing = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	if bookMissing {
		log.Warn("归还的图书已不存在,跳过可借数量更新",
			slog.Uint64("issue_id", uint64(rec.ID)),
		)
	} else {
		bookapp.InvalidateCache(ctx, uc.cache, bookID)
	}

	metrics.RecordBookReturned()
	log.Info("图书已归还",
		slog.Uint64("issue_id", uint64(rec.ID)),
		slog.Uint64("book_id", uint64(bookID)),
		slog.String("return_date", issue.FormatDate(rec.ReturnDate)),
	)
	return toIssueResponse(rec), nil
}
