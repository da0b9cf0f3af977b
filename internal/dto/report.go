package dto

import "github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"

// ── 负荷报表 DTO ──

// LoadReportQuery 报表查询参数
type LoadReportQuery struct {
	AcademicPeriodID string `form:"academic_period_id" binding:"omitempty,uuid"`
}

// LoadItem 单条排课的课时统计
type LoadItem struct {
	ScheduleID   string           `json:"schedule_id"`
	CourseCode   string           `json:"course_code"`
	CourseName   string           `json:"course_name"`
	Days         string           `json:"days"`
	Time         string           `json:"time"`
	PeriodStart  string           `json:"period_start"`
	PeriodEnd    string           `json:"period_end"`
	SessionCount int              `json:"session_count"`
	Hours        recurrence.Hours `json:"hours"`
}

// OverlapWarning 同一负荷内两条排课的时间重叠
type OverlapWarning struct {
	ScheduleID    string                    `json:"schedule_id"`
	CourseName    string                    `json:"course_name"`
	ConflictsWith recurrence.ConflictDetail `json:"conflicts_with"`
}

// LoadReportResponse 学生/教师负荷报表
type LoadReportResponse struct {
	SubjectID        string           `json:"subject_id"`
	SubjectType      string           `json:"subject_type"` // student | teacher
	AcademicPeriodID string           `json:"academic_period_id,omitempty"`
	Items            []LoadItem       `json:"items"`
	TotalSessions    int              `json:"total_sessions"`
	TotalHours       recurrence.Hours `json:"total_hours"`
	Warnings         []OverlapWarning `json:"warnings"`
}
