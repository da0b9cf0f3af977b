package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

// CalendarHandler 日历视图 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Day 日视图
// GET /api/v1/calendar/day?date=2024-01-08&student_id=xxx
func (h *CalendarHandler) Day(c *gin.Context) {
	var req dto.DayViewRequest
	if !bindQuery(c, &req) {
		return
	}

	view, err := h.calendarSvc.DayView(c.Request.Context(), &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, view)
}

// Month 月视图
// GET /api/v1/calendar/month?year=2024&month=1&teacher_id=xxx
func (h *CalendarHandler) Month(c *gin.Context) {
	var req dto.MonthViewRequest
	if !bindQuery(c, &req) {
		return
	}

	view, err := h.calendarSvc.MonthView(c.Request.Context(), &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, view)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectRequired):
		response.BadRequest(c, 18001, service.ErrSubjectRequired.Error())
	case errors.Is(err, service.ErrCalendarDateInvalid):
		response.BadRequest(c, 18002, service.ErrCalendarDateInvalid.Error())
	default:
		response.InternalError(c)
	}
}
