package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

// AcademicPeriodHandler 学期模块 HTTP 处理器
type AcademicPeriodHandler struct {
	periodSvc service.AcademicPeriodService
}

// NewAcademicPeriodHandler 创建 AcademicPeriodHandler
func NewAcademicPeriodHandler(periodSvc service.AcademicPeriodService) *AcademicPeriodHandler {
	return &AcademicPeriodHandler{periodSvc: periodSvc}
}

// List 获取学期列表
// GET /api/v1/academic-periods
func (h *AcademicPeriodHandler) List(c *gin.Context) {
	periods, err := h.periodSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": periods})
}

// Get 获取学期详情
// GET /api/v1/academic-periods/:id
func (h *AcademicPeriodHandler) Get(c *gin.Context) {
	period, err := h.periodSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.OK(c, period)
}

// GetCurrent 获取当前学期
// GET /api/v1/academic-periods/current
func (h *AcademicPeriodHandler) GetCurrent(c *gin.Context) {
	period, err := h.periodSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.OK(c, period)
}

// Create 创建学期
// POST /api/v1/academic-periods
func (h *AcademicPeriodHandler) Create(c *gin.Context) {
	var req dto.CreateAcademicPeriodRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	period, err := h.periodSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.Created(c, period)
}

// Update 更新学期
// PUT /api/v1/academic-periods/:id
func (h *AcademicPeriodHandler) Update(c *gin.Context) {
	var req dto.UpdateAcademicPeriodRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	period, err := h.periodSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.OK(c, period)
}

// Activate 设为当前学期
// PUT /api/v1/academic-periods/:id/activate
func (h *AcademicPeriodHandler) Activate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.periodSvc.Activate(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除学期
// DELETE /api/v1/academic-periods/:id
func (h *AcademicPeriodHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.periodSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleAcademicPeriodError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAcademicPeriodError 统一处理学期模块业务错误
func (h *AcademicPeriodHandler) handleAcademicPeriodError(c *gin.Context, err error) {
	if handleCommonError(c, err, 14009) {
		return
	}
	switch {
	case errors.Is(err, service.ErrAcademicPeriodNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrAcademicPeriodDateInvalid):
		response.BadRequest(c, 14002, "学期日期无效")
	case errors.Is(err, service.ErrAcademicPeriodHasSchedules):
		response.Conflict(c, 14003, service.ErrAcademicPeriodHasSchedules.Error(), nil)
	case errors.Is(err, service.ErrAcademicPeriodCutsSchedule):
		response.Conflict(c, 14004, service.ErrAcademicPeriodCutsSchedule.Error(), nil)
	default:
		response.InternalError(c)
	}
}
