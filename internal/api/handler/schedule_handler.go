package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

// ScheduleHandler 排课模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// List 按学期/课程/教师筛选排课
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	var req dto.ScheduleListRequest
	if !bindQuery(c, &req) {
		return
	}

	schedules, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// Get 获取排课详情（含课次与总课时）
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// Create 创建排课；与教师已有排课冲突时返回 409 及冲突详情
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// Update 编辑排课（乐观锁）
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// Delete 删除排课
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Preview 排课表单实时预览：上课日期、课次、总课时
// POST /api/v1/schedules/preview
func (h *ScheduleHandler) Preview(c *gin.Context) {
	var req dto.SchedulePreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.scheduleSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, preview)
}

// CheckConflicts 候选排课冲突检测；有无冲突均返回 200
// POST /api/v1/schedules/check-conflicts
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.scheduleSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理排课模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	if handleCommonError(c, err, 13006) {
		return
	}
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13001, "排课不存在")
	case errors.Is(err, service.ErrScheduleInvalidDays):
		response.BadRequest(c, 13002, service.ErrScheduleInvalidDays.Error())
	case errors.Is(err, service.ErrScheduleInvalidTime):
		response.BadRequest(c, 13003, service.ErrScheduleInvalidTime.Error())
	case errors.Is(err, service.ErrScheduleInvalidRange):
		response.BadRequest(c, 13004, service.ErrScheduleInvalidRange.Error())
	case errors.Is(err, service.ErrScheduleOutsidePeriod):
		response.BadRequest(c, 13005, service.ErrScheduleOutsidePeriod.Error())
	case errors.Is(err, service.ErrScheduleHasEnrollments):
		response.Conflict(c, 13007, service.ErrScheduleHasEnrollments.Error(), nil)
	case errors.Is(err, service.ErrScheduleCourseNotFound):
		response.NotFound(c, 13008, "课程不存在")
	case errors.Is(err, service.ErrSchedulePeriodNotFound):
		response.NotFound(c, 13009, "学期不存在")
	case errors.Is(err, service.ErrSubjectRequired):
		response.BadRequest(c, 13010, service.ErrSubjectRequired.Error())
	case errors.Is(err, service.ErrSchedulePreviewTooLong):
		response.BadRequest(c, 13011, service.ErrSchedulePreviewTooLong.Error())
	default:
		response.InternalError(c)
	}
}
