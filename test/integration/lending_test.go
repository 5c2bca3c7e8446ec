//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestSingleCopyLifecycle(t *testing.T) {
	b := CreateTestBook(t, 1)
	memberID := CreateTestMember(t)

	var rec IssueData
	Decode(t, Issue(t, b.ID, memberID), &rec)
	assert.Equal(t, "ACTIVE", rec.Status)
	assert.Equal(t, 0, Available(t, b.ID))

	resp := Issue(t, b.ID, memberID)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, apperrors.ErrCodeNoCopiesAvailable, resp.Code)

	returnURL := fmt.Sprintf("%s/issues/%d/return", BaseURL, rec.ID)
	Decode(t, Do(t, http.MethodPost, returnURL, nil), &rec)
	assert.Equal(t, "RETURNED", rec.Status)
	assert.Equal(t, 1, Available(t, b.ID))

	resp = Do(t, http.MethodPost, returnURL, nil)
	assert.Equal(t, apperrors.ErrCodeAlreadyReturned, resp.Code)
	assert.Equal(t, 1, Available(t, b.ID))
}

func TestDeleteBookWithActiveIssues(t *testing.T) {
	b := CreateTestBook(t, 2)
	m1, m2 := CreateTestMember(t), CreateTestMember(t)

	var r1, r2 IssueData
	Decode(t, Issue(t, b.ID, m1), &r1)
	Decode(t, Issue(t, b.ID, m2), &r2)

	bookURL := fmt.Sprintf("%s/books/%d", BaseURL, b.ID)
	resp := Do(t, http.MethodDelete, bookURL, nil)
	assert.Equal(t, apperrors.ErrCodeActiveIssuesExist, resp.Code)

	for _, id := range []uint{r1.ID, r2.ID} {
		resp := Do(t, http.MethodPost, fmt.Sprintf("%s/issues/%d/return", BaseURL, id), nil)
		require.Equal(t, 0, resp.Code, resp.Message)
	}
	assert.Equal(t, 2, Available(t, b.ID))

	resp = Do(t, http.MethodDelete, bookURL, nil)
	assert.Equal(t, 0, resp.Code, resp.Message)
}

// 并发借同一本书,成功数不超过馆藏
func TestConcurrentIssue(t *testing.T) {
	const copies, borrowers = 3, 20
	b := CreateTestBook(t, copies)

	members := make([]uint, borrowers)
	for i := range members {
		members[i] = CreateTestMember(t)
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, memberID := range members {
		wg.Add(1)
		go func(memberID uint) {
			defer wg.Done()
			resp := Issue(t, b.ID, memberID)
			if resp.Code == 0 {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(memberID)
	}
	wg.Wait()

	assert.Equal(t, copies, ok)
	assert.Equal(t, 0, Available(t, b.ID))
}
