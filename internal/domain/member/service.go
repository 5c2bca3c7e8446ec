package member

import (
	"context"
	"errors"
	"strings"
)

// Service 会员领域服务
type Service interface {
	// Register 会员注册
	// 业务规则:姓名、邮箱非空,邮箱唯一(格式由HTTP层binding校验)
	Register(ctx context.Context, name, email, phone string) (*Member, error)

	// GetMember 根据ID获取会员
	GetMember(ctx context.Context, id uint) (*Member, error)

	// ListMembers 查询全部会员
	ListMembers(ctx context.Context) ([]*Member, error)
}

type service struct {
	repo Repository
}

// NewService 创建会员服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, phone string) (*Member, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return nil, ErrInvalidName
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailDuplicate
	}
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	m := NewMember(name, email, strings.TrimSpace(phone))
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err // Repository已将唯一索引冲突转换为ErrEmailDuplicate
	}
	return m, nil
}

func (s *service) GetMember(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.List(ctx)
}
