package model

// Enrollment 选课记录表 — 对应 enrollments
type Enrollment struct {
	EnrollmentID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID        string `gorm:"type:uuid;not null;index"                       json:"student_id"`
	ScheduleID       string `gorm:"type:uuid;not null;index"                       json:"schedule_id"`
	Status           string `gorm:"type:varchar(20);not null;default:'enrolled'"   json:"status"` // enrolled | dropped
	ConflictOverride bool   `gorm:"not null;default:false"                         json:"conflict_override"`
	VersionedModel

	// 关联
	Schedule *Schedule `gorm:"foreignKey:ScheduleID;references:ScheduleID" json:"schedule,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
