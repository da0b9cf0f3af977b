package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

const (
	subjectStudent = "student"
	subjectTeacher = "teacher"
)

// ReportService 负荷报表业务接口
type ReportService interface {
	StudentLoad(ctx context.Context, studentID, periodID string) (*dto.LoadReportResponse, error)
	TeacherLoad(ctx context.Context, teacherID, periodID string) (*dto.LoadReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) StudentLoad(ctx context.Context, studentID, periodID string) (*dto.LoadReportResponse, error) {
	schedules, err := s.repo.Enrollment.ListSchedulesByStudent(ctx, studentID, periodID)
	if err != nil {
		s.logger.Error("加载学生课表失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return buildLoadReport(subjectStudent, studentID, periodID, schedules), nil
}

func (s *reportService) TeacherLoad(ctx context.Context, teacherID, periodID string) (*dto.LoadReportResponse, error) {
	schedules, err := s.repo.Schedule.ListByTeacher(ctx, teacherID, periodID)
	if err != nil {
		s.logger.Error("加载教师课表失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return buildLoadReport(subjectTeacher, teacherID, periodID, schedules), nil
}

// buildLoadReport 汇总课时并列出两两重叠的排课；每对重叠只报告一次
func buildLoadReport(subjectType, subjectID, periodID string, schedules []model.Schedule) *dto.LoadReportResponse {
	engine := toEngineSchedules(schedules)

	resp := &dto.LoadReportResponse{
		SubjectID:        subjectID,
		SubjectType:      subjectType,
		AcademicPeriodID: periodID,
		Items:            make([]dto.LoadItem, 0, len(schedules)),
		Warnings:         []dto.OverlapWarning{},
	}

	hours := make([]recurrence.Hours, 0, len(engine))
	for i, e := range engine {
		h := recurrence.HoursFor(e)
		sessions := recurrence.SessionsFor(e)
		hours = append(hours, h)
		resp.TotalSessions += sessions

		item := dto.LoadItem{
			ScheduleID:   e.ID,
			CourseName:   e.CourseName,
			Days:         e.Days,
			Time:         clockText(e.TimeStart) + "-" + clockText(e.TimeEnd),
			PeriodStart:  e.PeriodStart,
			PeriodEnd:    e.PeriodEnd,
			SessionCount: sessions,
			Hours:        h,
		}
		if c := schedules[i].Course; c != nil {
			item.CourseCode = c.Code
		}
		resp.Items = append(resp.Items, item)

		for _, detail := range recurrence.ListConflicts(recurrence.CandidateOf(e), engine[i+1:]) {
			resp.Warnings = append(resp.Warnings, dto.OverlapWarning{
				ScheduleID:    e.ID,
				CourseName:    e.CourseName,
				ConflictsWith: detail,
			})
		}
	}
	resp.TotalHours = recurrence.SumHours(hours...)
	return resp
}
