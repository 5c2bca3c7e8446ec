package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)
// 2. AvailableCopies由借阅流程维护,始终满足 0 <= AvailableCopies <= TotalCopies
// 3. TotalCopies - AvailableCopies 即未归还的借阅记录数
type Book struct {
	ID              uint
	Title           string // 书名
	Author          string // 作者
	Category        string // 分类(可为空)
	ISBN            string // ISBN号
	TotalCopies     int    // 馆藏总数
	AvailableCopies int    // 可借数量
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新入库的图书全部可借: AvailableCopies = TotalCopies
func NewBook(title, author, category, isbn string, totalCopies int) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		Category:        category,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasAvailableCopy 是否还有可借副本
func (b *Book) HasAvailableCopy() bool {
	return b.AvailableCopies > 0
}

// OnLoan 已借出数量
func (b *Book) OnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}
