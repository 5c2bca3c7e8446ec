//go:build integration

// Package integration 针对运行中的服务(真实MySQL/Redis)的端到端测试
//
//	go test -tags integration ./test/integration/...
//
// 服务地址默认 http://localhost:8000/api/v1,可用 LIBRARY_BASE_URL 覆盖
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL API基础URL
var BaseURL = func() string {
	if u := os.Getenv("LIBRARY_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8000/api/v1"
}()

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"-"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint   `json:"id"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// IssueData 借阅记录响应数据
type IssueData struct {
	ID         uint    `json:"id"`
	BookID     *uint   `json:"book_id"`
	MemberID   *uint   `json:"member_id"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
}

// Do 发送请求并解析统一响应,data为nil时不带请求体
func Do(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

// Decode 解析data字段
func Decode(t *testing.T, resp *Response, v interface{}) {
	t.Helper()
	require.Equal(t, 0, resp.Code, "请求失败: %s", resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, v), "解析响应数据失败")
}

// CreateTestBook 入库一本测试图书(ISBN随机)
func CreateTestBook(t *testing.T, copies int) BookData {
	t.Helper()
	var b BookData
	Decode(t, Do(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
		"title":        "集成测试图书",
		"author":       "测试作者",
		"isbn":         uuid.NewString()[:13],
		"total_copies": copies,
	}), &b)
	return b
}

// CreateTestMember 注册一个测试会员(邮箱随机)
func CreateTestMember(t *testing.T) uint {
	t.Helper()
	var m struct {
		ID uint `json:"id"`
	}
	Decode(t, Do(t, http.MethodPost, BaseURL+"/members", map[string]string{
		"name":  "测试会员",
		"email": fmt.Sprintf("it_%s@test.com", uuid.NewString()[:8]),
	}), &m)
	return m.ID
}

// Issue 借书,日期固定
func Issue(t *testing.T, bookID, memberID uint) *Response {
	t.Helper()
	return Do(t, http.MethodPost, BaseURL+"/issues", map[string]interface{}{
		"book_id":    bookID,
		"member_id":  memberID,
		"issue_date": "2024-01-01",
		"due_date":   "2024-01-15",
	})
}

// Available 查询当前可借数量
func Available(t *testing.T, bookID uint) int {
	t.Helper()
	var b BookData
	Decode(t, Do(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL, bookID), nil), &b)
	return b.AvailableCopies
}
