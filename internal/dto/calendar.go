package dto

// ── 日历模块 DTO ──

// CalendarQuery 日历查询目标；student_id 与 teacher_id 二选一
type CalendarQuery struct {
	StudentID        string `form:"student_id"         binding:"omitempty,uuid"`
	TeacherID        string `form:"teacher_id"         binding:"omitempty,uuid"`
	AcademicPeriodID string `form:"academic_period_id" binding:"omitempty,uuid"`
}

// DayViewRequest 日视图查询
type DayViewRequest struct {
	CalendarQuery
	Date string `form:"date" binding:"required,isodate"`
}

// MonthViewRequest 月视图查询
type MonthViewRequest struct {
	CalendarQuery
	Year  int `form:"year"  binding:"required,min=1970,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// CalendarSession 某一天中的一次课
type CalendarSession struct {
	ScheduleID string `json:"schedule_id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	TimeStart  string `json:"time_start"`
	TimeEnd    string `json:"time_end"`
	Location   string `json:"location,omitempty"`
}

// DayViewResponse 日视图
type DayViewResponse struct {
	Date     string            `json:"date"`
	Weekday  string            `json:"weekday"` // 星期代码，如 "TH"
	Sessions []CalendarSession `json:"sessions"`
}

// MonthViewResponse 月视图，仅包含有课的日期
type MonthViewResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []DayViewResponse `json:"days"`
}
