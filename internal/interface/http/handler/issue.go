package handler

import (
	"github.com/gin-gonic/gin"

	appissue "github.com/xiebiao/library/internal/application/issue"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// IssueHandler 借阅HTTP处理器
type IssueHandler struct {
	issueUseCase  *appissue.IssueBookUseCase
	returnUseCase *appissue.ReturnBookUseCase
	deleteUseCase *appissue.DeleteIssueUseCase
	getUseCase    *appissue.GetIssueUseCase
	listUseCase   *appissue.ListIssuesUseCase
}

// NewIssueHandler 创建借阅处理器
func NewIssueHandler(
	issueUseCase *appissue.IssueBookUseCase,
	returnUseCase *appissue.ReturnBookUseCase,
	deleteUseCase *appissue.DeleteIssueUseCase,
	getUseCase *appissue.GetIssueUseCase,
	listUseCase *appissue.ListIssuesUseCase,
) *IssueHandler {
	return &IssueHandler{
		issueUseCase:  issueUseCase,
		returnUseCase: returnUseCase,
		deleteUseCase: deleteUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

// IssueBook 借书
// @Summary      借书
// @Description  创建借阅记录,图书可借数量-1;无可借副本时失败
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.IssueBookRequest true "借阅信息"
// @Success      200 {object} response.Response{data=appissue.IssueResponse}
// @Failure      400 {object} response.Response "参数错误/无可借副本"
// @Failure      404 {object} response.Response "图书或会员不存在"
// @Router       /api/v1/issues [post]
func (h *IssueHandler) IssueBook(c *gin.Context) {
	var req dto.IssueBookRequest
	if !bindJSON(c, &req) {
		return
	}

	issueDate, err := issue.ParseDate(req.IssueDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	dueDate, err := issue.ParseDate(req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.issueUseCase.Execute(c.Request.Context(), appissue.IssueBookRequest{
		BookID:    req.BookID,
		MemberID:  req.MemberID,
		IssueDate: issueDate,
		DueDate:   dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ReturnBook 还书
// @Summary      还书
// @Description  归还日期取服务器当天,图书可借数量+1
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appissue.IssueResponse}
// @Failure      400 {object} response.Response "图书已归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/issues/{id}/return [post]
func (h *IssueHandler) ReturnBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteIssue 删除借阅记录
// @Summary      删除借阅记录
// @Description  删除未归还的记录时补回图书可借数量
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/issues/{id} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetIssue 借阅记录详情
// @Summary      借阅记录详情
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appissue.IssueResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListIssues 借阅记录列表
// @Summary      借阅记录列表
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=[]appissue.IssueResponse}
// @Router       /api/v1/issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
