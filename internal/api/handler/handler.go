package handler

import "github.com/EduOpsSolutions/EduOps-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	AcademicPeriod *AcademicPeriodHandler
	Course         *CourseHandler
	Schedule       *ScheduleHandler
	Enrollment     *EnrollmentHandler
	Calendar       *CalendarHandler
	Report         *ReportHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		AcademicPeriod: NewAcademicPeriodHandler(svc.AcademicPeriod),
		Course:         NewCourseHandler(svc.Course),
		Schedule:       NewScheduleHandler(svc.Schedule),
		Enrollment:     NewEnrollmentHandler(svc.Enrollment),
		Calendar:       NewCalendarHandler(svc.Calendar),
		Report:         NewReportHandler(svc.Report),
		Export:         NewExportHandler(svc.Export),
	}
}
