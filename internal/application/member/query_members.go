package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// GetMemberUseCase 会员详情查询
type GetMemberUseCase struct {
	memberService member.Service
}

// NewGetMemberUseCase 创建详情查询用例
func NewGetMemberUseCase(memberService member.Service) *GetMemberUseCase {
	return &GetMemberUseCase{memberService: memberService}
}

// Execute 执行查询
func (uc *GetMemberUseCase) Execute(ctx context.Context, id uint) (*MemberResponse, error) {
	m, err := uc.memberService.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMemberResponse(m), nil
}

// ListMembersUseCase 会员列表查询
type ListMembersUseCase struct {
	memberService member.Service
}

// NewListMembersUseCase 创建列表查询用例
func NewListMembersUseCase(memberService member.Service) *ListMembersUseCase {
	return &ListMembersUseCase{memberService: memberService}
}

// Execute 执行查询
func (uc *ListMembersUseCase) Execute(ctx context.Context) ([]*MemberResponse, error) {
	members, err := uc.memberService.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*MemberResponse, len(members))
	for i, m := range members {
		list[i] = toMemberResponse(m)
	}
	return list, nil
}
