package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，错误码的前三位决定错误类别（404xx/400xx/409xx/5xxxx）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、缓存错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapWithCode 包装系统错误并指定错误码(如数据库、Redis错误)
func WrapWithCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 404xx: 资源不存在（NotFoundError）
// - 400xx: 业务规则错误（冲突、无可借副本、重复归还）
// - 409xx: 参数错误
// - 5xxxx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal          = 50000 // 内部错误
	ErrCodeDatabaseError     = 50001 // 数据库错误
	ErrCodeRedisError        = 50002 // Redis错误
	ErrCodeCopyCountOverflow = 50003 // 可借数量越界（数据不一致）

	// 资源错误（40400-40499）
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeMemberNotFound = 40405 // 会员不存在
	ErrCodeIssueNotFound  = 40406 // 借阅记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeNoCopiesAvailable = 40001 // 无可借副本
	ErrCodeAlreadyReturned   = 40002 // 图书已归还
	ErrCodeEmailDuplicate    = 40003 // 邮箱已存在
	ErrCodeISBNDuplicate     = 40004 // ISBN已存在
	ErrCodeActiveIssuesExist = 40006 // 存在未归还的借阅记录

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 错误分类
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsNotFound 引用的实体不存在
func IsNotFound(err error) bool {
	return codeOf(err)/100 == 404
}

// IsConflict 唯一性冲突，或存在未归还借阅导致无法删除
func IsConflict(err error) bool {
	switch codeOf(err) {
	case ErrCodeEmailDuplicate, ErrCodeISBNDuplicate, ErrCodeActiveIssuesExist:
		return true
	}
	return false
}

// IsCapacity 没有可借副本
func IsCapacity(err error) bool {
	return codeOf(err) == ErrCodeNoCopiesAvailable
}

// IsAlreadyReturned 重复归还
func IsAlreadyReturned(err error) bool {
	return codeOf(err) == ErrCodeAlreadyReturned
}

// HTTPStatus 业务错误码 → HTTP状态码
// NotFound→404；业务规则与参数错误→400；其余→500
func HTTPStatus(err error) int {
	code := codeOf(err)
	switch {
	case code/100 == 404:
		return http.StatusNotFound
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}
