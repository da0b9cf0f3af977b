package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// Service 所有 Service 的聚合入口
type Service struct {
	AcademicPeriod AcademicPeriodService
	Course         CourseService
	Schedule       ScheduleService
	Enrollment     EnrollmentService
	Calendar       CalendarService
	Report         ReportService
	Export         ExportService
}

// NewService 创建 Service 聚合；loc 为排课时间所在时区，用于日历导出
func NewService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) *Service {
	report := NewReportService(repo, logger)
	return &Service{
		AcademicPeriod: NewAcademicPeriodService(repo, logger),
		Course:         NewCourseService(repo, logger),
		Schedule:       NewScheduleService(repo, logger),
		Enrollment:     NewEnrollmentService(repo, logger),
		Calendar:       NewCalendarService(repo, logger),
		Report:         report,
		Export:         NewExportService(repo, report, loc, logger),
	}
}
