package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code        string  `gorm:"type:varchar(30);not null;uniqueIndex"          json:"code"`
	Name        string  `gorm:"type:varchar(150);not null"                     json:"name"`
	Units       float64 `gorm:"type:numeric(4,1);not null;default:0"           json:"units"`
	Description string  `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
