package dto

// ── 选课模块 DTO ──

// EnrollRequest 选课请求；force=true 时忽略冲突并记录 conflict_override
type EnrollRequest struct {
	StudentID  string `json:"student_id"  binding:"required,uuid"`
	ScheduleID string `json:"schedule_id" binding:"required,uuid"`
	Force      bool   `json:"force"`
}

// EnrollmentResponse 选课记录响应
type EnrollmentResponse struct {
	ID               string            `json:"id"`
	StudentID        string            `json:"student_id"`
	ScheduleID       string            `json:"schedule_id"`
	Status           string            `json:"status"`
	ConflictOverride bool              `json:"conflict_override"`
	Schedule         *ScheduleResponse `json:"schedule,omitempty"`
	CreatedAt        string            `json:"created_at"`
}
