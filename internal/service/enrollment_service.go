package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

// ── 选课模块业务错误 ──

var (
	ErrEnrollmentNotFound       = errors.New("选课记录不存在")
	ErrEnrollmentDuplicate      = errors.New("学生已选该排课")
	ErrEnrollmentFull           = errors.New("排课人数已满")
	ErrEnrollmentConflict       = errors.New("与学生已选排课时间冲突")
	ErrEnrollmentAlreadyDropped = errors.New("选课记录已退选")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	// Enroll 冲突时返回 *ConflictError；force=true 时仍写入并标记 conflict_override
	Enroll(ctx context.Context, req *dto.EnrollRequest, callerID string) (*dto.EnrollmentResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error)
	Drop(ctx context.Context, id string, callerID string) error
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

func (s *enrollmentService) Enroll(ctx context.Context, req *dto.EnrollRequest, callerID string) (*dto.EnrollmentResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.String("schedule_id", req.ScheduleID), zap.Error(err))
		return nil, err
	}

	_, err = s.repo.Enrollment.GetActive(ctx, req.StudentID, req.ScheduleID)
	if err == nil {
		return nil, ErrEnrollmentDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, err
	}

	if schedule.Capacity > 0 {
		count, err := s.repo.Enrollment.CountActiveBySchedule(ctx, schedule.ScheduleID)
		if err != nil {
			s.logger.Error("统计选课人数失败", zap.Error(err))
			return nil, err
		}
		if count >= int64(schedule.Capacity) {
			return nil, ErrEnrollmentFull
		}
	}

	// 每次选课都重新加载学生当前课表，不使用缓存
	current, err := s.repo.Enrollment.ListSchedulesByStudent(ctx, req.StudentID, schedule.AcademicPeriodID)
	if err != nil {
		s.logger.Error("加载学生课表失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	result := recurrence.FindConflicts(recurrence.CandidateOf(toEngineSchedule(schedule)), toEngineSchedules(current))

	override := false
	if result.HasConflicts {
		if !req.Force {
			return nil, &ConflictError{Sentinel: ErrEnrollmentConflict, Result: result}
		}
		override = true
		s.logger.Warn("忽略冲突强制选课",
			zap.String("student_id", req.StudentID),
			zap.String("schedule_id", schedule.ScheduleID),
			zap.String("conflicting_schedule", result.ConflictingSchedule.ScheduleID),
			zap.String("caller", callerID),
		)
	}

	enrollment := &model.Enrollment{
		StudentID:        req.StudentID,
		ScheduleID:       schedule.ScheduleID,
		Status:           "enrolled",
		ConflictOverride: override,
		Schedule:         schedule,
	}
	enrollment.MarkCreated(callerID)

	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		// 并发选课由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEnrollmentDuplicate
		}
		s.logger.Error("创建选课记录失败", zap.Error(err))
		return nil, err
	}
	return toEnrollmentResponse(enrollment), nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出选课记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		result = append(result, *toEnrollmentResponse(&enrollments[i]))
	}
	return result, nil
}

// ────────────────────── Drop ──────────────────────

func (s *enrollmentService) Drop(ctx context.Context, id string, callerID string) error {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		s.logger.Error("查询选课记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if enrollment.Status == "dropped" {
		return ErrEnrollmentAlreadyDropped
	}

	if err := s.repo.Enrollment.Drop(ctx, id, callerID); err != nil {
		s.logger.Error("退选失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toEnrollmentResponse(e *model.Enrollment) *dto.EnrollmentResponse {
	resp := &dto.EnrollmentResponse{
		ID:               e.EnrollmentID,
		StudentID:        e.StudentID,
		ScheduleID:       e.ScheduleID,
		Status:           e.Status,
		ConflictOverride: e.ConflictOverride,
		CreatedAt:        e.CreatedAt.Format(timestampLayout),
	}
	if e.Schedule != nil {
		resp.Schedule = toScheduleResponse(e.Schedule)
	}
	return resp
}
