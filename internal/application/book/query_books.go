package book

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// GetBookUseCase 图书详情查询(Cache-Aside)
type GetBookUseCase struct {
	bookService book.Service
	cache       book.Cache // 可为nil(未启用Redis)
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache book.Cache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache}
}

// Execute 先查缓存,未命中或缓存不可用时查库并回填
// 版本号在查库前读取,读库期间发生的失效会让这次回填作废
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	log := logger.FromContext(ctx)

	fill := false
	var version int64
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err == nil {
			return toBookResponse(cached), nil
		}
		log.Debug("图书缓存未命中", slog.Uint64("book_id", uint64(id)), slog.Any("reason", err))

		if version, err = uc.cache.Version(ctx, id); err == nil {
			fill = true
		}
	}

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if fill {
		if err := uc.cache.Set(ctx, b, version); err != nil {
			log.Warn("回填图书缓存失败", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
		}
	}
	return toBookResponse(b), nil
}

// ListBooksUseCase 图书列表查询(按ID升序,不分页)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context) ([]*BookResponse, error) {
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	return list, nil
}
