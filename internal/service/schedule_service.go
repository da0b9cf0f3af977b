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

// ── 排课模块业务错误 ──

var (
	ErrScheduleNotFound        = errors.New("排课不存在")
	ErrScheduleInvalidDays     = errors.New("星期规则无效，至少选择一天（SU,M,T,W,TH,F,S）")
	ErrScheduleInvalidTime     = errors.New("开始时间必须早于结束时间")
	ErrScheduleInvalidRange    = errors.New("日期区间无效或结束日期早于开始日期")
	ErrScheduleOutsidePeriod   = errors.New("排课日期超出所属学期范围")
	ErrScheduleTeacherConflict = errors.New("该教师在同一时间段已有排课")
	ErrScheduleHasEnrollments  = errors.New("排课下仍有在读学生，无法删除")
	ErrScheduleCourseNotFound  = errors.New("课程不存在")
	ErrSchedulePeriodNotFound  = errors.New("学期不存在")
	ErrSchedulePreviewTooLong  = errors.New("预览日期区间不能超过 366 天")
)

// ScheduleService 排课业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// Preview 不落库，返回上课日期、次数与总课时
	Preview(ctx context.Context, req *dto.SchedulePreviewRequest) (*dto.SchedulePreviewResponse, error)
	// CheckConflicts 针对学生或教师的当前排课检测候选冲突
	CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*recurrence.ConflictResult, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	periodStart, err := recurrence.ParseDate(req.PeriodStart)
	if err != nil {
		return nil, ErrScheduleInvalidRange
	}
	periodEnd, err := recurrence.ParseDate(req.PeriodEnd)
	if err != nil {
		return nil, ErrScheduleInvalidRange
	}
	schedule := &model.Schedule{
		CourseID:         req.CourseID,
		TeacherID:        req.TeacherID,
		AcademicPeriodID: req.AcademicPeriodID,
		Days:             normalizedDays(req.Days),
		TimeStart:        clockText(req.TimeStart),
		TimeEnd:          clockText(req.TimeEnd),
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		Location:         req.Location,
		Capacity:         req.Capacity,
	}
	schedule.MarkCreated(callerID)

	if err := s.validate(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建排课失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("排课已创建",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("teacher_id", schedule.TeacherID),
		zap.String("days", schedule.Days),
	)
	return toScheduleResponse(schedule), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		AcademicPeriodID: req.AcademicPeriodID,
		CourseID:         req.CourseID,
		TeacherID:        req.TeacherID,
	})
	if err != nil {
		s.logger.Error("列出排课失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CourseID != nil && *req.CourseID != schedule.CourseID {
		schedule.CourseID = *req.CourseID
		schedule.Course = nil
	}
	if req.TeacherID != nil {
		schedule.TeacherID = *req.TeacherID
	}
	if req.Days != nil {
		schedule.Days = normalizedDays(*req.Days)
	}
	if req.TimeStart != nil {
		schedule.TimeStart = clockText(*req.TimeStart)
	}
	if req.TimeEnd != nil {
		schedule.TimeEnd = clockText(*req.TimeEnd)
	}
	if req.PeriodStart != nil {
		d, err := recurrence.ParseDate(*req.PeriodStart)
		if err != nil {
			return nil, ErrScheduleInvalidRange
		}
		schedule.PeriodStart = d
	}
	if req.PeriodEnd != nil {
		d, err := recurrence.ParseDate(*req.PeriodEnd)
		if err != nil {
			return nil, ErrScheduleInvalidRange
		}
		schedule.PeriodEnd = d
	}
	if req.Location != nil {
		schedule.Location = *req.Location
	}
	if req.Capacity != nil {
		schedule.Capacity = *req.Capacity
	}
	// 客户端持有的版本号参与乐观锁比较
	schedule.Version = req.Version
	schedule.MarkUpdated(callerID)

	if err := s.validate(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.Enrollment.CountActiveBySchedule(ctx, id)
	if err != nil {
		s.logger.Error("统计选课人数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrScheduleHasEnrollments
	}

	if err := s.repo.Schedule.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除排课失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Preview ──────────────────────

// maxPreviewDays 预览允许的最大日期跨度
const maxPreviewDays = 366

// Preview 时间未填写完整时课时为 null，日期列表照常返回。
// 星期规则与日期属于表单必填项，格式错误直接返回 400。
func (s *scheduleService) Preview(_ context.Context, req *dto.SchedulePreviewRequest) (*dto.SchedulePreviewResponse, error) {
	pattern, err := recurrence.ParseDayPattern(req.Days)
	if err != nil {
		return nil, ErrScheduleInvalidDays
	}
	r, err := recurrence.ParseDateRange(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, ErrScheduleInvalidRange
	}
	if r.Days() > maxPreviewDays {
		return nil, ErrSchedulePreviewTooLong
	}

	dates := recurrence.ExpandDates(pattern, r)
	hours := recurrence.NotComputable
	if w, err := recurrence.ParseTimeWindow(req.TimeStart, req.TimeEnd); err == nil {
		hours = recurrence.TotalHours(pattern, r, w)
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(dateLayout)
	}
	return &dto.SchedulePreviewResponse{
		Days:         pattern.String(),
		Dates:        formatted,
		SessionCount: len(dates),
		TotalHours:   hours,
	}, nil
}

// ────────────────────── CheckConflicts ──────────────────────

func (s *scheduleService) CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*recurrence.ConflictResult, error) {
	existing, err := loadSubjectSchedules(ctx, s.repo, req.StudentID, req.TeacherID, req.PeriodID)
	if err != nil {
		if !errors.Is(err, ErrSubjectRequired) {
			s.logger.Error("加载已有排课失败", zap.Error(err))
		}
		return nil, err
	}

	result := recurrence.FindConflicts(req.Candidate, toEngineSchedules(existing))
	return &result, nil
}

// ── 内部辅助方法 ──

func (s *scheduleService) load(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// validate 写入前校验：字段合法、课程与学期存在、日期落在学期内、教师无时间冲突
func (s *scheduleService) validate(ctx context.Context, schedule *model.Schedule) error {
	if err := validationError(toEngineSchedule(schedule).Validate()); err != nil {
		return err
	}

	if schedule.Course == nil {
		course, err := s.repo.Course.GetByID(ctx, schedule.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleCourseNotFound
			}
			s.logger.Error("查询课程失败", zap.String("course_id", schedule.CourseID), zap.Error(err))
			return err
		}
		schedule.Course = course
	}

	period, err := s.repo.AcademicPeriod.GetByID(ctx, schedule.AcademicPeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchedulePeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.String("period_id", schedule.AcademicPeriodID), zap.Error(err))
		return err
	}
	bounds := recurrence.NewDateRange(period.StartDate, period.EndDate)
	if !bounds.Contains(schedule.PeriodStart) || !bounds.Contains(schedule.PeriodEnd) {
		return ErrScheduleOutsidePeriod
	}

	existing, err := s.repo.Schedule.ListByTeacher(ctx, schedule.TeacherID, schedule.AcademicPeriodID)
	if err != nil {
		s.logger.Error("加载教师排课失败", zap.String("teacher_id", schedule.TeacherID), zap.Error(err))
		return err
	}
	result := recurrence.FindConflicts(recurrence.CandidateOf(toEngineSchedule(schedule)), toEngineSchedules(existing))
	if result.HasConflicts {
		s.logger.Info("教师排课冲突",
			zap.String("teacher_id", schedule.TeacherID),
			zap.String("conflicting_schedule", result.ConflictingSchedule.ScheduleID),
		)
		return &ConflictError{Sentinel: ErrScheduleTeacherConflict, Result: result}
	}
	return nil
}

// normalizedDays 存储规范顺序的星期代码；无法解析时原样保留交给校验报错
func normalizedDays(raw string) string {
	pattern, err := recurrence.ParseDayPattern(raw)
	if err != nil || pattern.IsEmpty() {
		return raw
	}
	return pattern.String()
}

func toScheduleResponse(s *model.Schedule) *dto.ScheduleResponse {
	engine := toEngineSchedule(s)
	return &dto.ScheduleResponse{
		ID:               s.ScheduleID,
		CourseID:         s.CourseID,
		CourseName:       s.CourseName(),
		TeacherID:        s.TeacherID,
		AcademicPeriodID: s.AcademicPeriodID,
		Days:             s.Days,
		TimeStart:        clockText(s.TimeStart),
		TimeEnd:          clockText(s.TimeEnd),
		PeriodStart:      engine.PeriodStart,
		PeriodEnd:        engine.PeriodEnd,
		Location:         s.Location,
		Capacity:         s.Capacity,
		SessionCount:     recurrence.SessionsFor(engine),
		TotalHours:       recurrence.HoursFor(engine),
		Version:          s.Version,
	}
}
