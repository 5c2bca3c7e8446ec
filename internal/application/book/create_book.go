package book

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// CreateBookUseCase 图书入库用例
// 业务规则校验(ISBN唯一、馆藏数量)由领域服务负责,应用层只做编排
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建入库用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 入库请求DTO
type CreateBookRequest struct {
	Title       string
	Author      string
	Category    string
	ISBN        string
	TotalCopies int
}

// Execute 执行入库用例,新书的可借数量等于馆藏总数
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.RegisterBook(ctx, req.Title, req.Author, req.Category, req.ISBN, req.TotalCopies)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("图书已入库",
		slog.Uint64("book_id", uint64(b.ID)),
		slog.String("isbn", b.ISBN),
		slog.Int("total_copies", b.TotalCopies),
	)
	return toBookResponse(b), nil
}
