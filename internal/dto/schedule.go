package dto

import "github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"

// ── 排课模块 DTO ──

// CreateScheduleRequest 创建排课请求
type CreateScheduleRequest struct {
	CourseID         string `json:"course_id"          binding:"required,uuid"`
	TeacherID        string `json:"teacher_id"         binding:"required,uuid"`
	AcademicPeriodID string `json:"academic_period_id" binding:"required,uuid"`
	Days             string `json:"days"               binding:"required,daypattern"` // "M,W,F"
	TimeStart        string `json:"time_start"         binding:"required,clock"`      // "09:00"
	TimeEnd          string `json:"time_end"           binding:"required,clock"`
	PeriodStart      string `json:"period_start"       binding:"required,isodate"`
	PeriodEnd        string `json:"period_end"         binding:"required,isodate"`
	Location         string `json:"location"           binding:"max=100"`
	Capacity         int    `json:"capacity"           binding:"gte=0"`
}

// UpdateScheduleRequest 更新排课请求
type UpdateScheduleRequest struct {
	CourseID    *string `json:"course_id"    binding:"omitempty,uuid"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,uuid"`
	Days        *string `json:"days"         binding:"omitempty,daypattern"`
	TimeStart   *string `json:"time_start"   binding:"omitempty,clock"`
	TimeEnd     *string `json:"time_end"     binding:"omitempty,clock"`
	PeriodStart *string `json:"period_start" binding:"omitempty,isodate"`
	PeriodEnd   *string `json:"period_end"   binding:"omitempty,isodate"`
	Location    *string `json:"location"     binding:"omitempty,max=100"`
	Capacity    *int    `json:"capacity"     binding:"omitempty,gte=0"`
	Version     int     `json:"version"      binding:"required,min=1"`
}

// ScheduleListRequest 排课列表筛选
type ScheduleListRequest struct {
	AcademicPeriodID string `form:"academic_period_id" binding:"omitempty,uuid"`
	CourseID         string `form:"course_id"          binding:"omitempty,uuid"`
	TeacherID        string `form:"teacher_id"         binding:"omitempty,uuid"`
}

// ScheduleResponse 排课信息响应（附带展开后的课时统计）
type ScheduleResponse struct {
	ID               string           `json:"id"`
	CourseID         string           `json:"course_id"`
	CourseName       string           `json:"course_name"`
	TeacherID        string           `json:"teacher_id"`
	AcademicPeriodID string           `json:"academic_period_id"`
	Days             string           `json:"days"`
	TimeStart        string           `json:"time_start"`
	TimeEnd          string           `json:"time_end"`
	PeriodStart      string           `json:"period_start"`
	PeriodEnd        string           `json:"period_end"`
	Location         string           `json:"location,omitempty"`
	Capacity         int              `json:"capacity"`
	SessionCount     int              `json:"session_count"`
	TotalHours       recurrence.Hours `json:"total_hours"`
	Version          int              `json:"version"`
}

// SchedulePreviewRequest 排课弹窗实时预览（不落库）
type SchedulePreviewRequest struct {
	Days        string `json:"days"         binding:"required,daypattern"`
	TimeStart   string `json:"time_start"`
	TimeEnd     string `json:"time_end"`
	PeriodStart string `json:"period_start" binding:"required,isodate"`
	PeriodEnd   string `json:"period_end"   binding:"required,isodate"`
}

// SchedulePreviewResponse 预览结果
type SchedulePreviewResponse struct {
	Days         string           `json:"days"`
	Dates        []string         `json:"dates"`
	SessionCount int              `json:"session_count"`
	TotalHours   recurrence.Hours `json:"total_hours"`
}

// CheckConflictsRequest 冲突检测请求；student_id 与 teacher_id 二选一
type CheckConflictsRequest struct {
	recurrence.Candidate
	StudentID string `json:"student_id" binding:"omitempty,uuid"`
	TeacherID string `json:"teacher_id" binding:"omitempty,uuid"`
}
