package dto

// IssueBookRequest HTTP借书请求
// 日期格式YYYY-MM-DD,由handler解析
type IssueBookRequest struct {
	BookID    uint   `json:"book_id" binding:"required,min=1" example:"1"`
	MemberID  uint   `json:"member_id" binding:"required,min=1" example:"1"`
	IssueDate string `json:"issue_date" binding:"required" example:"2024-01-01"`
	DueDate   string `json:"due_date" binding:"required" example:"2024-01-15"`
}
