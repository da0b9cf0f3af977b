package model

import "time"

// AcademicPeriod 学期/学段表 — 对应 academic_periods
type AcademicPeriod struct {
	AcademicPeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_period_id"`
	Name             string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate        time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate          time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsActive         bool      `gorm:"not null;default:false"                         json:"is_active"`
	Status           string    `gorm:"type:varchar(20);not null;default:'open'"       json:"status"` // open | closed
	VersionedModel
}

// TableName 指定表名
func (AcademicPeriod) TableName() string { return "academic_periods" }
