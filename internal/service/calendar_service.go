package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

// ── 日历模块业务错误 ──

var (
	ErrSubjectRequired     = errors.New("student_id 与 teacher_id 必须提供其一")
	ErrCalendarDateInvalid = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// CalendarService 日历视图业务接口
type CalendarService interface {
	// DayView 指定日期的全部课次，按开始时间升序
	DayView(ctx context.Context, req *dto.DayViewRequest) (*dto.DayViewResponse, error)
	// MonthView 指定月份中有课的日期及其课次
	MonthView(ctx context.Context, req *dto.MonthViewRequest) (*dto.MonthViewResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// calendarEntry 预解析的排课，逐日判断时不重复解析字符串
type calendarEntry struct {
	schedule *model.Schedule
	parsed   recurrence.Parsed
}

func (s *calendarService) DayView(ctx context.Context, req *dto.DayViewRequest) (*dto.DayViewResponse, error) {
	date, err := recurrence.ParseDate(req.Date)
	if err != nil {
		return nil, ErrCalendarDateInvalid
	}

	entries, err := s.entries(ctx, &req.CalendarQuery)
	if err != nil {
		return nil, err
	}
	day := dayView(date, entries)
	return &day, nil
}

func (s *calendarService) MonthView(ctx context.Context, req *dto.MonthViewRequest) (*dto.MonthViewResponse, error) {
	entries, err := s.entries(ctx, &req.CalendarQuery)
	if err != nil {
		return nil, err
	}

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	resp := &dto.MonthViewResponse{Year: req.Year, Month: req.Month, Days: []dto.DayViewResponse{}}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := dayView(d, entries)
		if len(day.Sessions) > 0 {
			resp.Days = append(resp.Days, day)
		}
	}
	return resp, nil
}

// entries 加载学生已选或教师所授排课；字段不完整的记录直接跳过
func (s *calendarService) entries(ctx context.Context, q *dto.CalendarQuery) ([]calendarEntry, error) {
	schedules, err := loadSubjectSchedules(ctx, s.repo, q.StudentID, q.TeacherID, q.AcademicPeriodID)
	if err != nil {
		if !errors.Is(err, ErrSubjectRequired) {
			s.logger.Error("加载日历排课失败", zap.Error(err))
		}
		return nil, err
	}

	entries := make([]calendarEntry, 0, len(schedules))
	for i := range schedules {
		parsed, err := toEngineSchedule(&schedules[i]).Parse()
		if err != nil {
			s.logger.Warn("跳过字段不完整的排课", zap.String("schedule_id", schedules[i].ScheduleID), zap.Error(err))
			continue
		}
		entries = append(entries, calendarEntry{schedule: &schedules[i], parsed: parsed})
	}
	return entries, nil
}

func dayView(date time.Time, entries []calendarEntry) dto.DayViewResponse {
	type hit struct {
		start   recurrence.Clock
		session dto.CalendarSession
	}
	var hits []hit
	for _, e := range entries {
		if !recurrence.Occurs(e.parsed.Pattern, e.parsed.Range, date) {
			continue
		}
		hits = append(hits, hit{
			start: e.parsed.Window.Start,
			session: dto.CalendarSession{
				ScheduleID: e.schedule.ScheduleID,
				CourseID:   e.schedule.CourseID,
				CourseName: e.schedule.CourseName(),
				TimeStart:  e.parsed.Window.Start.String(),
				TimeEnd:    e.parsed.Window.End.String(),
				Location:   e.schedule.Location,
			},
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	sessions := make([]dto.CalendarSession, len(hits))
	for i, h := range hits {
		sessions[i] = h.session
	}
	return dto.DayViewResponse{
		Date:     date.Format(dateLayout),
		Weekday:  string(recurrence.DayCodeOf(date.Weekday())),
		Sessions: sessions,
	}
}

// loadSubjectSchedules 按学生或教师加载排课，学生优先
func loadSubjectSchedules(ctx context.Context, repo *repository.Repository, studentID, teacherID, periodID string) ([]model.Schedule, error) {
	switch {
	case studentID != "":
		return repo.Enrollment.ListSchedulesByStudent(ctx, studentID, periodID)
	case teacherID != "":
		return repo.Schedule.ListByTeacher(ctx, teacherID, periodID)
	default:
		return nil, ErrSubjectRequired
	}
}
