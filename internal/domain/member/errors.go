package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "会员不存在")

	// ErrEmailDuplicate 邮箱已注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrMemberHasActiveIssues 存在未归还的借阅记录,不能删除
	ErrMemberHasActiveIssues = apperrors.New(apperrors.ErrCodeActiveIssuesExist, "该会员存在未归还的借阅记录")

	// ErrInvalidEmail 邮箱为空
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱不能为空")

	// ErrInvalidName 姓名为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
)
