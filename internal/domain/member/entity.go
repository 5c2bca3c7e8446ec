package member

import (
	"time"
)

// Status 会员状态,注册后为ACTIVE,目前没有改变状态的操作
type Status string

const StatusActive Status = "ACTIVE"

// Member 会员实体(聚合根)
// 设计说明:
// 1. Email作为业务唯一标识(数据库UNIQUE索引保证)
// 2. Phone可为空
// 3. 新注册会员状态为ACTIVE
type Member struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMember 创建新会员(工厂方法)
func NewMember(name, email, phone string) *Member {
	now := time.Now()
	return &Member{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
