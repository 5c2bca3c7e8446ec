package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/issue"
)

// issueRepository 借阅记录仓储实现
// 事务通过context传递,借书/还书/删除都在用例的事务中调用
type issueRepository struct {
	db  *gorm.DB
	loc *time.Location // 日期列写入时使用的时区
}

// NewIssueRepository 创建借阅记录仓储
// loc为数据库连接的时区(config.DatabaseConfig.Location),nil按UTC处理
func NewIssueRepository(db *gorm.DB, loc *time.Location) issue.Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &issueRepository{db: db, loc: loc}
}

// activeIssues 未归还借阅的查询条件,与IssueRecord.IsActive一致
func activeIssues(db *gorm.DB) *gorm.DB {
	return db.Where("return_date IS NULL")
}

// Create 创建借阅记录
func (r *issueRepository) Create(ctx context.Context, rec *issue.IssueRecord) error {
	model := toIssueModel(rec, r.loc)
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return dbError(err, "创建借阅记录失败")
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找借阅记录
func (r *issueRepository) FindByID(ctx context.Context, id uint) (*issue.IssueRecord, error) {
	var model IssueModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.notFoundOr(err, "查询借阅记录失败")
	}
	return toIssueEntity(&model), nil
}

// LockByID 悲观锁查询借阅记录
func (r *issueRepository) LockByID(ctx context.Context, id uint) (*issue.IssueRecord, error) {
	var model IssueModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.notFoundOr(err, "锁定借阅记录失败")
	}
	return toIssueEntity(&model), nil
}

// List 按ID升序查询全部借阅记录
func (r *issueRepository) List(ctx context.Context) ([]*issue.IssueRecord, error) {
	var models []IssueModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询借阅记录失败")
	}

	records := make([]*issue.IssueRecord, len(models))
	for i := range models {
		records[i] = toIssueEntity(&models[i])
	}
	return records, nil
}

// MarkReturned 写入归还日期
// UPDATE issues SET return_date = ? WHERE id = ? AND return_date IS NULL
func (r *issueRepository) MarkReturned(ctx context.Context, id uint, returnDate time.Time) error {
	db := r.getDB(ctx)
	result := db.Model(&IssueModel{}).
		Scopes(activeIssues).
		Where("id = ?", id).
		Update("return_date", toDBDate(returnDate, r.loc))

	if result.Error != nil {
		return dbError(result.Error, "更新归还日期失败")
	}

	if result.RowsAffected == 0 {
		var model IssueModel
		if err := db.Select("id").First(&model, id).Error; err != nil {
			return r.notFoundOr(err, "查询借阅记录失败")
		}
		return issue.ErrAlreadyReturned
	}
	return nil
}

// Delete 删除借阅记录
func (r *issueRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&IssueModel{}, id)
	if result.Error != nil {
		return dbError(result.Error, "删除借阅记录失败")
	}
	if result.RowsAffected == 0 {
		return issue.ErrIssueNotFound
	}
	return nil
}

// CountActiveByBook 统计图书未归还的借阅数
func (r *issueRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	return r.countActive(ctx, "book_id = ?", bookID)
}

// CountActiveByMember 统计会员未归还的借阅数
func (r *issueRepository) CountActiveByMember(ctx context.Context, memberID uint) (int64, error) {
	return r.countActive(ctx, "member_id = ?", memberID)
}

func (r *issueRepository) countActive(ctx context.Context, cond string, id uint) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&IssueModel{}).
		Scopes(activeIssues).
		Where(cond, id).
		Count(&n).Error
	if err != nil {
		return 0, dbError(err, "统计借阅记录失败")
	}
	return n, nil
}

func (r *issueRepository) notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return issue.ErrIssueNotFound
	}
	return dbError(err, msg)
}

// toIssueModel 领域实体 → GORM模型
func toIssueModel(rec *issue.IssueRecord, loc *time.Location) *IssueModel {
	model := &IssueModel{
		ID:        rec.ID,
		BookID:    rec.BookID,
		MemberID:  rec.MemberID,
		IssueDate: toDBDate(rec.IssueDate, loc),
		DueDate:   toDBDate(rec.DueDate, loc),
	}
	if rec.ReturnDate != nil {
		d := toDBDate(*rec.ReturnDate, loc)
		model.ReturnDate = &d
	}
	return model
}

// toIssueEntity GORM模型 → 领域实体
func toIssueEntity(model *IssueModel) *issue.IssueRecord {
	rec := &issue.IssueRecord{
		ID:        model.ID,
		BookID:    model.BookID,
		MemberID:  model.MemberID,
		IssueDate: issue.DateOf(model.IssueDate),
		DueDate:   issue.DateOf(model.DueDate),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.ReturnDate != nil {
		d := issue.DateOf(*model.ReturnDate)
		rec.ReturnDate = &d
	}
	return rec
}

func (r *issueRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}
