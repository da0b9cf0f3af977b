package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
)

// EnrollmentRepository 选课记录数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	// GetActive 查询学生在某排课上的有效选课
	GetActive(ctx context.Context, studentID, scheduleID string) (*model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	// ListSchedulesByStudent 学生已选（未退选）的排课，periodID 为空时不过滤学期
	ListSchedulesByStudent(ctx context.Context, studentID, periodID string) ([]model.Schedule, error)
	CountActiveBySchedule(ctx context.Context, scheduleID string) (int64, error)
	Drop(ctx context.Context, id string, updatedBy string) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetActive(ctx context.Context, studentID, scheduleID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND schedule_id = ? AND status = ?", studentID, scheduleID, "enrolled").
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Schedule").Preload("Schedule.Course").
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) ListSchedulesByStudent(ctx context.Context, studentID, periodID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	query := r.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN enrollments e ON e.schedule_id = schedules.schedule_id AND e.deleted_at IS NULL").
		Where("e.student_id = ? AND e.status = ?", studentID, "enrolled")
	if periodID != "" {
		query = query.Where("schedules.academic_period_id = ?", periodID)
	}
	err := query.Order("e.created_at ASC").Find(&schedules).Error
	return schedules, err
}

func (r *enrollmentRepo) CountActiveBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("schedule_id = ? AND status = ?", scheduleID, "enrolled").
		Count(&count).Error
	return count, err
}

// Drop 退选：保留记录，仅将状态置为 dropped
func (r *enrollmentRepo) Drop(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("enrollment_id = ?", id).
		Updates(map[string]interface{}{
			"status":     "dropped",
			"updated_by": updatedBy,
			"version":    gorm.Expr("version + 1"),
		}).Error
}
