package issue

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrIssueNotFound 借阅记录不存在
	ErrIssueNotFound = apperrors.New(apperrors.ErrCodeIssueNotFound, "借阅记录不存在")

	// ErrAlreadyReturned 图书已归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该借阅记录已归还")

	// ErrInvalidDueDate 应还日期早于借出日期
	ErrInvalidDueDate = apperrors.New(apperrors.ErrCodeInvalidParams, "应还日期不能早于借出日期")

	// ErrInvalidDate 日期格式不正确
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式应为YYYY-MM-DD")
)
