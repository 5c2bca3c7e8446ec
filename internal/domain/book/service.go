package book

import (
	"context"
	"errors"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(ISBN唯一、馆藏数量)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// RegisterBook 图书入库
	// 业务规则:
	// - 书名、作者、ISBN不能为空
	// - 馆藏总数>=0
	// - ISBN不能重复
	RegisterBook(ctx context.Context, title, author, category, isbn string, totalCopies int) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RegisterBook 图书入库
func (s *service) RegisterBook(ctx context.Context, title, author, category, isbn string, totalCopies int) (*Book, error) {
	title, author, isbn = strings.TrimSpace(title), strings.TrimSpace(author), strings.TrimSpace(isbn)
	if title == "" || author == "" {
		return nil, ErrInvalidTitle
	}
	if isbn == "" {
		return nil, ErrInvalidISBN
	}
	if totalCopies < 0 {
		return nil, ErrInvalidCopies
	}

	// 先查ISBN;并发插入时由唯一索引兜底,Repository转换为ErrISBNDuplicate
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	b := NewBook(title, author, strings.TrimSpace(category), isbn, totalCopies)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}
