package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	pkgerrors "github.com/EduOpsSolutions/EduOps-sub001/pkg/errors"
)

// ScheduleFilter 排课列表筛选条件，空字段表示不过滤
type ScheduleFilter struct {
	AcademicPeriodID string
	CourseID         string
	TeacherID        string
}

// ScheduleRepository 排课数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, error)
	ListByTeacher(ctx context.Context, teacherID, periodID string) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// List 按创建时间排序，保证冲突检测"第一条"的顺序稳定
func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, error) {
	var schedules []model.Schedule
	query := r.db.WithContext(ctx).Preload("Course")
	if filter.AcademicPeriodID != "" {
		query = query.Where("academic_period_id = ?", filter.AcademicPeriodID)
	}
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.TeacherID != "" {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	err := query.Order("created_at ASC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByTeacher(ctx context.Context, teacherID, periodID string) ([]model.Schedule, error) {
	return r.List(ctx, ScheduleFilter{TeacherID: teacherID, AcademicPeriodID: periodID})
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("schedule_id = ? AND version = ?", schedule.ScheduleID, oldVersion).
		Updates(map[string]interface{}{
			"course_id":          schedule.CourseID,
			"teacher_id":         schedule.TeacherID,
			"academic_period_id": schedule.AcademicPeriodID,
			"days":               schedule.Days,
			"time_start":         schedule.TimeStart,
			"time_end":           schedule.TimeEnd,
			"period_start":       schedule.PeriodStart,
			"period_end":         schedule.PeriodEnd,
			"location":           schedule.Location,
			"capacity":           schedule.Capacity,
			"updated_by":         schedule.UpdatedBy,
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
