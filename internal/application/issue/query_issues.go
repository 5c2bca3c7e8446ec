package issue

import (
	"context"

	"github.com/xiebiao/library/internal/domain/issue"
)

// GetIssueUseCase 借阅记录详情
type GetIssueUseCase struct {
	issueRepo issue.Repository
}

// NewGetIssueUseCase 创建详情查询用例
func NewGetIssueUseCase(issueRepo issue.Repository) *GetIssueUseCase {
	return &GetIssueUseCase{issueRepo: issueRepo}
}

// Execute 执行查询
func (uc *GetIssueUseCase) Execute(ctx context.Context, id uint) (*IssueResponse, error) {
	rec, err := uc.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toIssueResponse(rec), nil
}

// ListIssuesUseCase 借阅记录列表
type ListIssuesUseCase struct {
	issueRepo issue.Repository
}

// NewListIssuesUseCase 创建列表查询用例
func NewListIssuesUseCase(issueRepo issue.Repository) *ListIssuesUseCase {
	return &ListIssuesUseCase{issueRepo: issueRepo}
}

// Execute 执行查询
func (uc *ListIssuesUseCase) Execute(ctx context.Context) ([]*IssueResponse, error) {
	records, err := uc.issueRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*IssueResponse, len(records))
	for i, r := range records {
		list[i] = toIssueResponse(r)
	}
	return list, nil
}
