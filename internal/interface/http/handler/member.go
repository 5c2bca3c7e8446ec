package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	registerUseCase *appmember.RegisterMemberUseCase
	getUseCase      *appmember.GetMemberUseCase
	listUseCase     *appmember.ListMembersUseCase
	deleteUseCase   *appmember.DeleteMemberUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	registerUseCase *appmember.RegisterMemberUseCase,
	getUseCase *appmember.GetMemberUseCase,
	listUseCase *appmember.ListMembersUseCase,
	deleteUseCase *appmember.DeleteMemberUseCase,
) *MemberHandler {
	return &MemberHandler{
		registerUseCase: registerUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// CreateMember 会员注册
// @Summary      会员注册
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateMemberRequest true "会员信息"
// @Success      200 {object} response.Response{data=appmember.MemberResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱已存在"
// @Router       /api/v1/members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appmember.RegisterMemberRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetMember 会员详情
// @Summary      会员详情
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=appmember.MemberResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
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

// ListMembers 会员列表
// @Summary      会员列表
// @Tags         会员
// @Produce      json
// @Success      200 {object} response.Response{data=[]appmember.MemberResponse}
// @Router       /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteMember 删除会员
// @Summary      删除会员
// @Description  存在未归还的借阅记录时拒绝删除
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "存在未归还的借阅记录"
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
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
