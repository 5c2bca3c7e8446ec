package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/library/internal/application/book"
	appissue "github.com/xiebiao/library/internal/application/issue"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	tx := mysql.NewTxManager(db)
	bookRepo := mysql.NewBookRepository(db)
	memberRepo := mysql.NewMemberRepository(db)
	issueRepo := mysql.NewIssueRepository(db, time.UTC)
	bookSvc := book.NewService(bookRepo)
	memberSvc := member.NewService(memberRepo)
	clock := func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "DELETE"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       time.Hour,
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return router.New(cfg, log, router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookSvc),
			appbook.NewGetBookUseCase(bookSvc, nil),
			appbook.NewListBooksUseCase(bookSvc),
			appbook.NewDeleteBookUseCase(bookRepo, issueRepo, tx, nil),
		),
		Member: handler.NewMemberHandler(
			appmember.NewRegisterMemberUseCase(memberSvc),
			appmember.NewGetMemberUseCase(memberSvc),
			appmember.NewListMembersUseCase(memberSvc),
			appmember.NewDeleteMemberUseCase(memberRepo, issueRepo, tx),
		),
		Issue: handler.NewIssueHandler(
			appissue.NewIssueBookUseCase(bookRepo, memberRepo, issueRepo, tx, nil),
			appissue.NewReturnBookUseCase(issueRepo, bookRepo, tx, nil, clock),
			appissue.NewDeleteIssueUseCase(issueRepo, bookRepo, tx, nil),
			appissue.NewGetIssueUseCase(issueRepo),
			appissue.NewListIssuesUseCase(issueRepo),
		),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPing(t *testing.T) {
	r := newTestServer(t)
	w, env := do(t, r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBooks(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/books",
		`{"title":"Go","author":"Rob","isbn":"9787115428028","total_copies":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created appbook.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 2, created.AvailableCopies)

	t.Run("重复ISBN", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/books",
			`{"title":"Go2","author":"Ken","isbn":"9787115428028","total_copies":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeISBNDuplicate, env.Code)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/books", `{"author":"Rob"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})

	t.Run("负数馆藏", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/books",
			`{"title":"X","author":"Y","isbn":"1","total_copies":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("列表", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/api/v1/books", "")
		require.Equal(t, http.StatusOK, w.Code)
		var list []appbook.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 1)
	})

	t.Run("不存在", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/api/v1/books/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
	})

	t.Run("非法ID", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/api/v1/books/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})
}

func TestMembers(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, http.MethodPost, "/api/v1/members", `{"name":"张三","email":"zs@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/v1/members", `{"name":"李四","email":"zs@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeEmailDuplicate, env.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/members", `{"name":"王五","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	w, env = do(t, r, http.MethodDelete, "/api/v1/members/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeMemberNotFound, env.Code)
}

func TestIssueLifecycle(t *testing.T) {
	r := newTestServer(t)

	_, _ = do(t, r, http.MethodPost, "/api/v1/books", `{"title":"Go","author":"Rob","isbn":"1","total_copies":1}`)
	_, _ = do(t, r, http.MethodPost, "/api/v1/members", `{"name":"张三","email":"zs@example.com"}`)

	body := `{"book_id":1,"member_id":1,"issue_date":"2024-01-01","due_date":"2024-01-15"}`
	w, env := do(t, r, http.MethodPost, "/api/v1/issues", body)
	require.Equal(t, http.StatusOK, w.Code)
	var rec appissue.IssueResponse
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "ACTIVE", rec.Status)
	assert.Nil(t, rec.ReturnDate)

	w, env = do(t, r, http.MethodPost, "/api/v1/issues", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeNoCopiesAvailable, env.Code)

	w, env = do(t, r, http.MethodDelete, "/api/v1/books/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeActiveIssuesExist, env.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/issues/1/return", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	require.NotNil(t, rec.ReturnDate)
	assert.Equal(t, "2024-01-10", *rec.ReturnDate)

	w, env = do(t, r, http.MethodPost, "/api/v1/issues/1/return", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeAlreadyReturned, env.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/issues/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/issues/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeIssueNotFound, env.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/books/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIssueBadDates(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/issues",
		`{"book_id":1,"member_id":1,"issue_date":"01/01/2024","due_date":"2024-01-15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/issues", `{"book_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestServer(t)
	_, _ = do(t, r, http.MethodGet, "/ping", "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/ping",status="200"}`)
}

func TestCORS(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
