package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Enroll 为学生选课；时间冲突且未指定 force 时返回 409 及冲突详情
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentSvc.Enroll(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, enrollment)
}

// ListByStudent 学生的全部选课记录
// GET /api/v1/enrollments/students/:id
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	list, err := h.enrollmentSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Drop 退选
// DELETE /api/v1/enrollments/:id
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.enrollmentSvc.Drop(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	if handleCommonError(c, err, 17004) {
		return
	}
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 17001, "选课记录不存在")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 17002, "排课不存在")
	case errors.Is(err, service.ErrEnrollmentDuplicate):
		response.Conflict(c, 17003, service.ErrEnrollmentDuplicate.Error(), nil)
	case errors.Is(err, service.ErrEnrollmentFull):
		response.Conflict(c, 17005, service.ErrEnrollmentFull.Error(), nil)
	case errors.Is(err, service.ErrEnrollmentAlreadyDropped):
		response.BadRequest(c, 17006, service.ErrEnrollmentAlreadyDropped.Error())
	default:
		response.InternalError(c)
	}
}
