package issue

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	bookapp "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// IssueBookUseCase 借书用例
// 涉及:事务、悲观锁、跨聚合的一致性(available_copies = total_copies - 未归还借阅数)
type IssueBookUseCase struct {
	bookRepo   book.Repository
	memberRepo member.Repository
	issueRepo  issue.Repository
	txManager  *mysql.TxManager
	cache      book.Cache
}

// NewIssueBookUseCase 创建借书用例
func NewIssueBookUseCase(
	bookRepo book.Repository,
	memberRepo member.Repository,
	issueRepo issue.Repository,
	txManager *mysql.TxManager,
	cache book.Cache,
) *IssueBookUseCase {
	return &IssueBookUseCase{
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		issueRepo:  issueRepo,
		txManager:  txManager,
		cache:      cache,
	}
}

// IssueBookRequest 借书请求
type IssueBookRequest struct {
	BookID    uint
	MemberID  uint
	IssueDate time.Time
	DueDate   time.Time
}

// Execute 执行借书
//
// 并发场景:某书只剩1本,两个会员同时借
//  1. SELECT FOR UPDATE 锁定图书行,第二个事务在此等待
//  2. 锁定会员行(防止借书期间会员被删除)
//  3. 锁定后检查可借数量,第二个事务看到0,返回ErrNoCopiesAvailable
//  4. 创建借阅记录,可借数量-1(条件更新兜底,不会出现负数)
//  5. COMMIT释放锁,再删除图书缓存
func (uc *IssueBookUseCase) Execute(ctx context.Context, req IssueBookRequest) (resp *IssueResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "issue.IssueBook", trace.WithAttributes(
		attribute.Int64("book_id", int64(req.BookID)),
		attribute.Int64("member_id", int64(req.MemberID)),
	))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLending(metrics.OpIssue, start, err)
	}()

	if err = issue.ValidateDates(req.IssueDate, req.DueDate); err != nil {
		return nil, err
	}

	var rec *issue.IssueRecord
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if _, err := uc.memberRepo.LockByID(txCtx, req.MemberID); err != nil {
			return err
		}
		if !b.HasAvailableCopy() {
			return book.ErrNoCopiesAvailable
		}

		rec = issue.NewIssueRecord(req.BookID, req.MemberID, req.IssueDate, req.DueDate)
		if err := uc.issueRepo.Create(txCtx, rec); err != nil {
			return err
		}
		return uc.bookRepo.UpdateAvailableCopies(txCtx, req.BookID, -1)
	})
	if err != nil {
		return nil, err
	}

	bookapp.InvalidateCache(ctx, uc.cache, req.BookID)
	metrics.RecordIssueCreated()
	logger.FromContext(ctx).Info("图书已借出",
		slog.Uint64("issue_id", uint64(rec.ID)),
		slog.Uint64("book_id", uint64(req.BookID)),
		slog.Uint64("member_id", uint64(req.MemberID)),
		slog.String("due_date", rec.DueDate.Format(issue.DateLayout)),
	)
	return toIssueResponse(rec), nil
}
