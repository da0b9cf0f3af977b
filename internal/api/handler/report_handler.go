package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

// ReportHandler 负荷报表 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// StudentLoad 学生课程负荷
// GET /api/v1/reports/students/:id/load
func (h *ReportHandler) StudentLoad(c *gin.Context) {
	var q dto.LoadReportQuery
	if !bindQuery(c, &q) {
		return
	}

	report, err := h.reportSvc.StudentLoad(c.Request.Context(), c.Param("id"), q.AcademicPeriodID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// TeacherLoad 教师授课负荷
// GET /api/v1/reports/teachers/:id/load
func (h *ReportHandler) TeacherLoad(c *gin.Context) {
	var q dto.LoadReportQuery
	if !bindQuery(c, &q) {
		return
	}

	report, err := h.reportSvc.TeacherLoad(c.Request.Context(), c.Param("id"), q.AcademicPeriodID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}
