package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/service"
	"github.com/haryan80/interventional-radiology-website/pkg/response"
)

// SpeakerHandler 讲者模块 HTTP 处理器
type SpeakerHandler struct {
	speakerSvc service.SpeakerService
}

// NewSpeakerHandler 创建 SpeakerHandler
func NewSpeakerHandler(speakerSvc service.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{speakerSvc: speakerSvc}
}

// ListPublic 公开讲者列表（仅可见讲者，按 display_order 排序）
// GET /api/v1/speakers
func (h *SpeakerHandler) ListPublic(c *gin.Context) {
	speakers, err := h.speakerSvc.List(c.Request.Context(), true)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, speakers)
}

// GetPublic 公开讲者详情
// GET /api/v1/speakers/:id
func (h *SpeakerHandler) GetPublic(c *gin.Context) {
	speaker, err := h.speakerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.NotFound(c, 12001, "讲者不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, speaker)
}

// ListAdmin 管理后台讲者列表（含隐藏讲者）
// GET /api/v1/admin/speakers
func (h *SpeakerHandler) ListAdmin(c *gin.Context) {
	speakers, err := h.speakerSvc.List(c.Request.Context(), false)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, speakers)
}

// Create 新建讲者
// POST /api/v1/admin/speakers
func (h *SpeakerHandler) Create(c *gin.Context) {
	var req dto.CreateSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	speaker, err := h.speakerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, speaker)
}

// Update 更新讲者
// PATCH /api/v1/admin/speakers/:id
func (h *SpeakerHandler) Update(c *gin.Context) {
	var req dto.UpdateSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	speaker, err := h.speakerSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.NotFound(c, 12001, "讲者不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, speaker)
}

// Delete 删除讲者
// DELETE /api/v1/admin/speakers/:id
func (h *SpeakerHandler) Delete(c *gin.Context) {
	if err := h.speakerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.NotFound(c, 12001, "讲者不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Reorder 整体重排讲者展示顺序
// PUT /api/v1/admin/speakers/order
func (h *SpeakerHandler) Reorder(c *gin.Context) {
	var req dto.ReorderSpeakersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.speakerSvc.Reorder(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.NotFound(c, 12001, "讲者不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/speaker_handler.go
