package book

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// BookResponse 图书响应DTO
type BookResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category,omitempty"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// InvalidateCache 删除图书详情缓存(事务提交后调用)
// cache为nil表示未启用缓存;删除失败只记日志,缓存会在TTL后过期
func InvalidateCache(ctx context.Context, cache book.Cache, id uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("删除图书缓存失败",
			slog.Uint64("book_id", uint64(id)),
			slog.Any("error", err),
		)
	}
}
