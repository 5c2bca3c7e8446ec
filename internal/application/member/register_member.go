package member

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/logger"
)

// RegisterMemberUseCase 会员注册用例
type RegisterMemberUseCase struct {
	memberService member.Service
}

// NewRegisterMemberUseCase 创建注册用例
func NewRegisterMemberUseCase(memberService member.Service) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{memberService: memberService}
}

// RegisterMemberRequest 注册请求
type RegisterMemberRequest struct {
	Name  string
	Email string
	Phone string
}

// MemberResponse 会员响应DTO
type MemberResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行注册,返回应用层DTO而不是领域实体
func (uc *RegisterMemberUseCase) Execute(ctx context.Context, req RegisterMemberRequest) (*MemberResponse, error) {
	m, err := uc.memberService.Register(ctx, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("会员已注册", slog.Uint64("member_id", uint64(m.ID)))
	return toMemberResponse(m), nil
}

func toMemberResponse(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
