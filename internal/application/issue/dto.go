package issue

import (
	"time"

	"github.com/xiebiao/library/internal/domain/issue"
)

// Clock 返回当前时间,归还日期取其日历日期
type Clock func() time.Time

// IssueResponse 借阅记录响应DTO
// 日期格式YYYY-MM-DD;return_date为null表示未归还
// book_id/member_id为null表示图书或会员已删除
type IssueResponse struct {
	ID         uint    `json:"id"`
	BookID     *uint   `json:"book_id"`
	MemberID   *uint   `json:"member_id"`
	IssueDate  string  `json:"issue_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
}

func toIssueResponse(r *issue.IssueRecord) *IssueResponse {
	resp := &IssueResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		MemberID:  r.MemberID,
		IssueDate: r.IssueDate.Format(issue.DateLayout),
		DueDate:   r.DueDate.Format(issue.DateLayout),
		Status:    string(r.Status()),
	}
	if r.ReturnDate != nil {
		s := issue.FormatDate(r.ReturnDate)
		resp.ReturnDate = &s
	}
	return resp
}
