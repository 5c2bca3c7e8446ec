package mysql

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestDBError(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := dbError(cause, "查询图书失败")

	assert.ErrorIs(t, err, cause)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, "查询图书失败", appErr.Message)
}

func TestToDBDate(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	in := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, loc := range []*time.Location{time.UTC, shanghai, newYork} {
		got := toDBDate(in, loc)
		assert.Equal(t, loc, got.Location())
		assert.Equal(t, "2024-01-10 00:00:00", got.Format("2006-01-02 15:04:05"), loc.String())
	}
}
