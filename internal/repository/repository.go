package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	AcademicPeriod AcademicPeriodRepository
	Course         CourseRepository
	Schedule       ScheduleRepository
	Enrollment     EnrollmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		AcademicPeriod: NewAcademicPeriodRepo(db),
		Course:         NewCourseRepo(db),
		Schedule:       NewScheduleRepo(db),
		Enrollment:     NewEnrollmentRepo(db),
	}
}

// BeginTx 开启事务；未连接数据库（单元测试注入 mock）时返回 nil
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
