package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// StudentLoad 导出学生负荷报表
// GET /api/v1/export/reports/students/:id/load.xlsx
func (h *ExportHandler) StudentLoad(c *gin.Context) {
	h.exportLoad(c, "student")
}

// TeacherLoad 导出教师负荷报表
// GET /api/v1/export/reports/teachers/:id/load.xlsx
func (h *ExportHandler) TeacherLoad(c *gin.Context) {
	h.exportLoad(c, "teacher")
}

func (h *ExportHandler) exportLoad(c *gin.Context, subjectType string) {
	var q dto.LoadReportQuery
	if !bindQuery(c, &q) {
		return
	}

	buf, filename, err := h.exportSvc.ExportLoadReport(c.Request.Context(), subjectType, c.Param("id"), q.AcademicPeriodID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.File(c, filename, xlsxContentType, buf.Bytes())
}

// Calendar 导出 iCalendar 课表
// GET /api/v1/export/calendar.ics?student_id=xxx
func (h *ExportHandler) Calendar(c *gin.Context) {
	var q dto.CalendarQuery
	if !bindQuery(c, &q) {
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, icsContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectRequired):
		response.BadRequest(c, 16001, service.ErrSubjectRequired.Error())
	case errors.Is(err, service.ErrExportSubjectInvalid):
		response.BadRequest(c, 16002, service.ErrExportSubjectInvalid.Error())
	default:
		response.InternalError(c)
	}
}
