package model

import "time"

// Schedule 排课表 — 对应 schedules
//
// days 为逗号分隔的星期代码（SU,M,T,W,TH,F,S），time_start/time_end 为每日时间窗口，
// period_start/period_end 为重复生效的日期区间（含两端）。
type Schedule struct {
	ScheduleID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	CourseID         string    `gorm:"type:uuid;not null"                             json:"course_id"`
	TeacherID        string    `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	AcademicPeriodID string    `gorm:"type:uuid;not null;index"                       json:"academic_period_id"`
	Days             string    `gorm:"type:varchar(20);not null"                      json:"days"`
	TimeStart        string    `gorm:"type:time;not null"                             json:"time_start"`
	TimeEnd          string    `gorm:"type:time;not null"                             json:"time_end"`
	PeriodStart      time.Time `gorm:"type:date;not null"                             json:"period_start"`
	PeriodEnd        time.Time `gorm:"type:date;not null"                             json:"period_end"`
	Location         string    `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	Capacity         int       `gorm:"not null;default:0"                             json:"capacity"` // 0 表示不限
	VersionedModel

	// 关联
	Course         *Course         `gorm:"foreignKey:CourseID;references:CourseID"                 json:"course,omitempty"`
	AcademicPeriod *AcademicPeriod `gorm:"foreignKey:AcademicPeriodID;references:AcademicPeriodID" json:"academic_period,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// CourseName 关联课程名称，未预加载时为空
func (s *Schedule) CourseName() string {
	if s.Course == nil {
		return ""
	}
	return s.Course.Name
}
