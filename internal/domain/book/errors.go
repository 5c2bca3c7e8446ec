package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrBookHasActiveIssues 存在未归还的借阅记录,不能删除
	ErrBookHasActiveIssues = apperrors.New(apperrors.ErrCodeActiveIssuesExist, "该图书存在未归还的借阅记录")

	// ErrNoCopiesAvailable 无可借副本
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoCopiesAvailable, "该图书暂无可借副本")

	// ErrCopyCountOverflow 可借数量将超出[0, 馆藏总数]
	ErrCopyCountOverflow = apperrors.New(apperrors.ErrCodeCopyCountOverflow, "可借数量超出馆藏总数")

	// ErrInvalidCopies 馆藏总数不合法
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "馆藏总数不能为负数")

	// ErrInvalidISBN ISBN为空
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")

	// ErrInvalidTitle 书名或作者为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名和作者不能为空")
)
