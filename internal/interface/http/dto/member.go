package dto

// CreateMemberRequest HTTP会员注册请求
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"张三"`
	Email string `json:"email" binding:"required,email,max=100" example:"zhangsan@example.com"`
	Phone string `json:"phone" binding:"omitempty,max=20" example:"13800138000"`
}
