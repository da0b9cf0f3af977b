package service

import (
	"errors"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
)

// ConflictError 携带冲突详情的业务错误；errors.Is 匹配其 Sentinel
type ConflictError struct {
	Sentinel error
	Result   recurrence.ConflictResult
}

func (e *ConflictError) Error() string { return e.Sentinel.Error() }

func (e *ConflictError) Unwrap() error { return e.Sentinel }

// toEngineSchedule 将持久化的排课转换为引擎读取的原始字段形式
func toEngineSchedule(s *model.Schedule) recurrence.Schedule {
	return recurrence.Schedule{
		ID:               s.ScheduleID,
		Days:             s.Days,
		TimeStart:        s.TimeStart,
		TimeEnd:          s.TimeEnd,
		PeriodStart:      s.PeriodStart.Format(dateLayout),
		PeriodEnd:        s.PeriodEnd.Format(dateLayout),
		AcademicPeriodID: s.AcademicPeriodID,
		CourseID:         s.CourseID,
		CourseName:       s.CourseName(),
		TeacherID:        s.TeacherID,
	}
}

func toEngineSchedules(list []model.Schedule) []recurrence.Schedule {
	out := make([]recurrence.Schedule, len(list))
	for i := range list {
		out[i] = toEngineSchedule(&list[i])
	}
	return out
}

// clockText 将数据库 time 列（可能带秒）规范为 HH:MM；无法解析时原样返回
func clockText(raw string) string {
	c, err := recurrence.ParseClock(raw)
	if err != nil {
		return raw
	}
	return c.String()
}

// validationError 将引擎的解析错误映射为排课模块业务错误
func validationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, recurrence.ErrInvalidDayCode):
		return ErrScheduleInvalidDays
	case errors.Is(err, recurrence.ErrInvalidClock), errors.Is(err, recurrence.ErrEmptyWindow):
		return ErrScheduleInvalidTime
	default:
		return ErrScheduleInvalidRange
	}
}
