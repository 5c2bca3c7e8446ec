package book_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookapp "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// racingRepo 读出图书后、返回前插入一次借出(模拟并发写在读库与回填之间提交)
type racingRepo struct {
	book.Repository
	cache *redis.BookCache
	race  bool
}

func (r *racingRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, err := r.Repository.FindByID(ctx, id)
	if err != nil || !r.race {
		return b, err
	}
	r.race = false
	if err := r.Repository.UpdateAvailableCopies(ctx, id, -1); err != nil {
		return nil, err
	}
	bookapp.InvalidateCache(ctx, r.cache, id)
	return b, nil
}

func newGetBook(t *testing.T) (*bookapp.GetBookUseCase, *racingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := redis.NewBookCache(client, time.Minute)

	repo := &racingRepo{Repository: mysql.NewBookRepository(dbtest.New(t)), cache: cache}
	return bookapp.NewGetBookUseCase(book.NewService(repo), cache), repo, mr
}

func TestGetBook_StaleReadIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	uc, repo, mr := newGetBook(t)

	b := book.NewBook("Dune", "Herbert", "", "isbn-1", 2)
	require.NoError(t, repo.Create(ctx, b))

	repo.race = true
	got, err := uc.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableCopies)
	assert.False(t, mr.Exists("library:book:1"))

	got, err = uc.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableCopies)
	require.True(t, mr.Exists("library:book:1"))

	// 命中缓存
	got, err = uc.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableCopies)
}

func TestGetBook_FallsBackToDatabaseWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	uc, repo, mr := newGetBook(t)

	b := book.NewBook("Emma", "Austen", "", "isbn-2", 1)
	require.NoError(t, repo.Create(ctx, b))
	mr.Close()

	got, err := uc.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.Title)

	_, err = uc.Execute(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGetBook_WithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := mysql.NewBookRepository(dbtest.New(t))
	uc := bookapp.NewGetBookUseCase(book.NewService(repo), nil)

	b := book.NewBook("Emma", "Austen", "", "isbn-3", 1)
	require.NoError(t, repo.Create(ctx, b))

	got, err := uc.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableCopies)
}
