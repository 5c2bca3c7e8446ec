package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/member"
)

// memberRepository 会员仓储实现
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
// 邮箱唯一性由数据库UNIQUE索引保证，冲突时转换为ErrEmailDuplicate
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		Name:   m.Name,
		Email:  m.Email,
		Phone:  m.Phone,
		Status: string(m.Status),
	}
	if model.Status == "" {
		model.Status = string(member.StatusActive)
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return dbError(err, "创建会员失败")
	}

	m.ID = model.ID
	m.Status = member.Status(model.Status)
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找会员
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.notFoundOr(err, "查询会员失败")
	}
	return toMemberEntity(&model), nil
}

// FindByEmail 根据邮箱查找会员
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	if err := r.getDB(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, r.notFoundOr(err, "查询会员失败")
	}
	return toMemberEntity(&model), nil
}

// List 按ID升序查询全部会员
func (r *memberRepository) List(ctx context.Context) ([]*member.Member, error) {
	var models []MemberModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询会员列表失败")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// Delete 删除会员(硬删除)
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&MemberModel{}, id)
	if result.Error != nil {
		return dbError(result.Error, "删除会员失败")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// LockByID 悲观锁查询会员
// 借书与删除会员互斥:借书期间会员不能被删除
func (r *memberRepository) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.notFoundOr(err, "锁定会员失败")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return member.ErrMemberNotFound
	}
	return dbError(err, msg)
}

// toMemberEntity GORM模型 → 领域实体
func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Status:    member.Status(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (r *memberRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}
