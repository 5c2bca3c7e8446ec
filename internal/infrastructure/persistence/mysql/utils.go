package mysql

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// dbError 包装数据库错误(错误码50001),原始错误只写日志
func dbError(err error, message string) error {
	return apperrors.WrapWithCode(err, apperrors.ErrCodeDatabaseError, message)
}

// isDuplicateError 判断是否为唯一索引冲突错误
// TranslateError开启时统一为gorm.ErrDuplicatedKey,以下字符串用于兼容未翻译的驱动错误:
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// toDBDate 日期写库前转为loc时区的零点
// loc必须与连接的时区一致(MySQL DSN的loc),否则驱动换算后日期会偏移一天
func toDBDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
