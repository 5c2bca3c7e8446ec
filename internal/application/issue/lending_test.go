package issue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookapp "github.com/xiebiao/library/internal/application/book"
	issueapp "github.com/xiebiao/library/internal/application/issue"
	memberapp "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var (
	issueDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dueDate   = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	today     = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
)

// ledger 借阅流程的完整装配(真实仓储 + SQLite + miniredis缓存)
type ledger struct {
	books     book.Repository
	members   member.Repository
	issues    issue.Repository
	cache     *redis.BookCache
	createBk  *bookapp.CreateBookUseCase
	getBook   *bookapp.GetBookUseCase
	delBook   *bookapp.DeleteBookUseCase
	register  *memberapp.RegisterMemberUseCase
	delMember *memberapp.DeleteMemberUseCase
	issue     *issueapp.IssueBookUseCase
	ret       *issueapp.ReturnBookUseCase
	delIssue  *issueapp.DeleteIssueUseCase
	getIssue  *issueapp.GetIssueUseCase
	list      *issueapp.ListIssuesUseCase
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	db := dbtest.New(t)
	tx := mysql.NewTxManager(db)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := redis.NewBookCache(client, time.Minute)

	l := &ledger{
		books:   mysql.NewBookRepository(db),
		members: mysql.NewMemberRepository(db),
		issues:  mysql.NewIssueRepository(db, time.UTC),
		cache:   cache,
	}
	bookSvc := book.NewService(l.books)
	l.createBk = bookapp.NewCreateBookUseCase(bookSvc)
	l.getBook = bookapp.NewGetBookUseCase(bookSvc, cache)
	l.delBook = bookapp.NewDeleteBookUseCase(l.books, l.issues, tx, cache)
	l.register = memberapp.NewRegisterMemberUseCase(member.NewService(l.members))
	l.delMember = memberapp.NewDeleteMemberUseCase(l.members, l.issues, tx)
	l.issue = issueapp.NewIssueBookUseCase(l.books, l.members, l.issues, tx, cache)
	l.ret = issueapp.NewReturnBookUseCase(l.issues, l.books, tx, cache, func() time.Time { return today })
	l.delIssue = issueapp.NewDeleteIssueUseCase(l.issues, l.books, tx, cache)
	l.getIssue = issueapp.NewGetIssueUseCase(l.issues)
	l.list = issueapp.NewListIssuesUseCase(l.issues)
	return l
}

func (l *ledger) newBook(t *testing.T, isbn string, copies int) uint {
	t.Helper()
	b, err := l.createBk.Execute(context.Background(), bookapp.CreateBookRequest{
		Title: "Book " + isbn, Author: "Author", ISBN: isbn, TotalCopies: copies,
	})
	require.NoError(t, err)
	require.Equal(t, copies, b.AvailableCopies)
	return b.ID
}

func (l *ledger) newMember(t *testing.T, email string) uint {
	t.Helper()
	m, err := l.register.Execute(context.Background(), memberapp.RegisterMemberRequest{Name: "M", Email: email})
	require.NoError(t, err)
	return m.ID
}

func (l *ledger) lend(bookID, memberID uint) (*issueapp.IssueResponse, error) {
	return l.issue.Execute(context.Background(), issueapp.IssueBookRequest{
		BookID: bookID, MemberID: memberID, IssueDate: issueDate, DueDate: dueDate,
	})
}

// available 直接读库,不经过缓存
func (l *ledger) available(t *testing.T, bookID uint) int {
	t.Helper()
	b, err := l.books.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.AvailableCopies
}

// assertCopiesConsistent available_copies = total_copies - 未归还借阅数,且在[0, total]内
func (l *ledger) assertCopiesConsistent(t *testing.T, bookID uint) {
	t.Helper()
	ctx := context.Background()
	b, err := l.books.FindByID(ctx, bookID)
	require.NoError(t, err)
	active, err := l.issues.CountActiveByBook(ctx, bookID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, b.AvailableCopies, 0)
	assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies)
	assert.Equal(t, b.TotalCopies-int(active), b.AvailableCopies)
}

func TestLending_SingleCopyLifecycle(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-1", 1)
	memberID := l.newMember(t, "a@example.com")

	rec, err := l.lend(bookID, memberID)
	require.NoError(t, err)
	assert.Equal(t, 0, l.available(t, bookID))
	assert.Equal(t, string(issue.StatusActive), rec.Status)
	assert.Nil(t, rec.ReturnDate)
	assert.Equal(t, "2024-01-01", rec.IssueDate)
	assert.Equal(t, "2024-01-15", rec.DueDate)

	_, err = l.lend(bookID, memberID)
	assert.True(t, apperrors.IsCapacity(err))
	assert.ErrorIs(t, err, book.ErrNoCopiesAvailable)

	returned, err := l.ret.Execute(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, l.available(t, bookID))
	assert.Equal(t, string(issue.StatusReturned), returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, "2024-01-10", *returned.ReturnDate)

	_, err = l.ret.Execute(ctx, rec.ID)
	assert.True(t, apperrors.IsAlreadyReturned(err))
	assert.Equal(t, 1, l.available(t, bookID))

	l.assertCopiesConsistent(t, bookID)
}

func TestLending_DeleteBookBlockedByActiveIssues(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-2", 2)
	m1 := l.newMember(t, "a@example.com")
	m2 := l.newMember(t, "b@example.com")

	r1, err := l.lend(bookID, m1)
	require.NoError(t, err)
	r2, err := l.lend(bookID, m2)
	require.NoError(t, err)
	assert.Equal(t, 0, l.available(t, bookID))

	err = l.delBook.Execute(ctx, bookID)
	assert.True(t, apperrors.IsConflict(err))
	assert.ErrorIs(t, err, book.ErrBookHasActiveIssues)

	_, err = l.ret.Execute(ctx, r1.ID)
	require.NoError(t, err)
	_, err = l.ret.Execute(ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, l.available(t, bookID))

	require.NoError(t, l.delBook.Execute(ctx, bookID))
	_, err = l.books.FindByID(ctx, bookID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 已归还的记录保留,图书引用被外键置空
	got, err := l.getIssue.Execute(ctx, r1.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BookID)
	require.NotNil(t, got.MemberID)
	assert.Equal(t, m1, *got.MemberID)
	assert.Equal(t, string(issue.StatusReturned), got.Status)
}

func TestLending_IssueWithNoCopiesMutatesNothing(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-0", 0)
	memberID := l.newMember(t, "a@example.com")

	_, err := l.lend(bookID, memberID)
	assert.ErrorIs(t, err, book.ErrNoCopiesAvailable)

	list, err := l.list.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, l.available(t, bookID))
}

func TestLending_IssueNotFound(t *testing.T) {
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-1", 1)
	memberID := l.newMember(t, "a@example.com")

	_, err := l.lend(999, memberID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = l.lend(bookID, 999)
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.Equal(t, 1, l.available(t, bookID))
}

func TestLending_IssueRejectsDueBeforeIssue(t *testing.T) {
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-1", 1)
	memberID := l.newMember(t, "a@example.com")

	_, err := l.issue.Execute(context.Background(), issueapp.IssueBookRequest{
		BookID: bookID, MemberID: memberID, IssueDate: dueDate, DueDate: issueDate,
	})
	assert.ErrorIs(t, err, issue.ErrInvalidDueDate)
	assert.Equal(t, 1, l.available(t, bookID))
}

func TestLending_DeleteIssueCompensation(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-3", 2)
	memberID := l.newMember(t, "a@example.com")

	active, err := l.lend(bookID, memberID)
	require.NoError(t, err)
	returned, err := l.lend(bookID, memberID)
	require.NoError(t, err)
	_, err = l.ret.Execute(ctx, returned.ID)
	require.NoError(t, err)
	require.Equal(t, 1, l.available(t, bookID))

	// 删除已归还记录:可借数量不变
	require.NoError(t, l.delIssue.Execute(ctx, returned.ID))
	assert.Equal(t, 1, l.available(t, bookID))

	// 删除未归还记录:可借数量+1
	require.NoError(t, l.delIssue.Execute(ctx, active.ID))
	assert.Equal(t, 2, l.available(t, bookID))

	_, err = l.getIssue.Execute(ctx, active.ID)
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	assert.ErrorIs(t, l.delIssue.Execute(ctx, active.ID), issue.ErrIssueNotFound)

	l.assertCopiesConsistent(t, bookID)
}

func TestLending_ReturnNotFound(t *testing.T) {
	l := newLedger(t)
	_, err := l.ret.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
}

func TestLending_ReturnAfterBookRemoved(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-4", 2)
	m1 := l.newMember(t, "a@example.com")
	m2 := l.newMember(t, "b@example.com")

	rec1, err := l.lend(bookID, m1)
	require.NoError(t, err)
	rec2, err := l.lend(bookID, m2)
	require.NoError(t, err)

	// 绕过用例直接删除图书,未归还记录的book_id被置空
	require.NoError(t, l.books.Delete(ctx, bookID))
	got, err := l.getIssue.Execute(ctx, rec1.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BookID)
	assert.Equal(t, string(issue.StatusActive), got.Status)

	resp, err := l.ret.Execute(ctx, rec1.ID)
	require.NoError(t, err)
	assert.Equal(t, string(issue.StatusReturned), resp.Status)
	assert.Nil(t, resp.BookID)

	// 删除图书已不存在的未归还记录同样不报错
	require.NoError(t, l.delIssue.Execute(ctx, rec2.ID))
	_, err = l.getIssue.Execute(ctx, rec2.ID)
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
}

func TestLending_DeleteMember(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-5", 1)
	memberID := l.newMember(t, "a@example.com")

	rec, err := l.lend(bookID, memberID)
	require.NoError(t, err)

	err = l.delMember.Execute(ctx, memberID)
	assert.ErrorIs(t, err, member.ErrMemberHasActiveIssues)
	assert.True(t, apperrors.IsConflict(err))

	_, err = l.ret.Execute(ctx, rec.ID)
	require.NoError(t, err)
	require.NoError(t, l.delMember.Execute(ctx, memberID))

	_, err = l.members.FindByID(ctx, memberID)
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.ErrorIs(t, l.delMember.Execute(ctx, memberID), member.ErrMemberNotFound)

	got, err := l.getIssue.Execute(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MemberID)
	require.NotNil(t, got.BookID)
	assert.Equal(t, bookID, *got.BookID)
}

func TestLending_CacheInvalidatedAfterIssueAndReturn(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	bookID := l.newBook(t, "isbn-6", 1)
	memberID := l.newMember(t, "a@example.com")

	// 预热缓存
	b, err := l.getBook.Execute(ctx, bookID)
	require.NoError(t, err)
	require.Equal(t, 1, b.AvailableCopies)
	_, err = l.cache.Get(ctx, bookID)
	require.NoError(t, err)

	rec, err := l.lend(bookID, memberID)
	require.NoError(t, err)
	b, err = l.getBook.Execute(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, b.AvailableCopies)

	_, err = l.ret.Execute(ctx, rec.ID)
	require.NoError(t, err)
	b, err = l.getBook.Execute(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.AvailableCopies)
}

func TestLending_ConcurrentIssuesNeverOverdraw(t *testing.T) {
	l := newLedger(t)
	const copies, borrowers = 3, 10
	bookID := l.newBook(t, "isbn-7", copies)

	memberIDs := make([]uint, borrowers)
	for i := range memberIDs {
		memberIDs[i] = l.newMember(t, "m"+string(rune('a'+i))+"@example.com")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)
	for _, id := range memberIDs {
		wg.Add(1)
		go func(memberID uint) {
			defer wg.Done()
			_, err := l.lend(bookID, memberID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperrors.IsCapacity(err):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, copies, ok)
	assert.Equal(t, borrowers-copies, full)
	assert.Equal(t, 0, l.available(t, bookID))
	l.assertCopiesConsistent(t, bookID)
}
