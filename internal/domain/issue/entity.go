package issue

import (
	"time"
)

// DateLayout 借阅日期的对外格式(只有日期,没有时间)
const DateLayout = "2006-01-02"

// Status 借阅状态
// 只有两个状态,由ReturnDate是否为空推导,不单独存储
type Status string

const (
	StatusActive   Status = "ACTIVE"   // 借出未还
	StatusReturned Status = "RETURNED" // 已归还
)

// IssueRecord 借阅记录(聚合根)
// 设计说明:
// 1. 只保存BookID/MemberID,不直接引用Book、Member对象(避免跨聚合引用)
// 2. BookID/MemberID为nil表示图书或会员已删除(外键ON DELETE SET NULL)
// 3. ReturnDate为nil表示借出未还(active),这是判断active的唯一依据
// 4. 日期均为UTC零点的日历日期
//
// 状态流转:
//
//	ACTIVE --归还--> RETURNED
//	ACTIVE --删除--> (删除,需补回可借数量)
//	RETURNED --删除--> (删除,无需补偿)
type IssueRecord struct {
	ID         uint
	BookID     *uint
	MemberID   *uint
	IssueDate  time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewIssueRecord 创建借阅记录(工厂方法)
// 日期会被截断到日,调用方需先用ValidateDates校验
func NewIssueRecord(bookID, memberID uint, issueDate, dueDate time.Time) *IssueRecord {
	now := time.Now()
	return &IssueRecord{
		BookID:    &bookID,
		MemberID:  &memberID,
		IssueDate: DateOf(issueDate),
		DueDate:   DateOf(dueDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BookRef 关联的图书ID,图书已删除时ok为false
func (r *IssueRecord) BookRef() (id uint, ok bool) {
	if r.BookID == nil {
		return 0, false
	}
	return *r.BookID, true
}

// IsActive 是否借出未还
func (r *IssueRecord) IsActive() bool {
	return r.ReturnDate == nil
}

// Status 当前状态
func (r *IssueRecord) Status() Status {
	if r.IsActive() {
		return StatusActive
	}
	return StatusReturned
}

// MarkReturned 标记归还(领域行为)
// 业务规则:只能从ACTIVE归还一次
func (r *IssueRecord) MarkReturned(on time.Time) error {
	if !r.IsActive() {
		return ErrAlreadyReturned
	}
	d := DateOf(on)
	r.ReturnDate = &d
	r.UpdatedAt = time.Now()
	return nil
}

// NeedsCompensation 删除时是否需要补回图书的可借数量
func (r *IssueRecord) NeedsCompensation() bool {
	return r.IsActive()
}

// ValidateDates 应还日期不能早于借出日期
func ValidateDates(issueDate, dueDate time.Time) error {
	if issueDate.IsZero() || dueDate.IsZero() {
		return ErrInvalidDate
	}
	if DateOf(dueDate).Before(DateOf(issueDate)) {
		return ErrInvalidDueDate
	}
	return nil
}

// DateOf 截断到日(按t自身的时区取年月日,结果为UTC零点)
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate 格式化为 YYYY-MM-DD,nil返回空字符串
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
