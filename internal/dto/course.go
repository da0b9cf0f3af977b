package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Code        string  `json:"code"        binding:"required,min=2,max=30"`
	Name        string  `json:"name"        binding:"required,min=2,max=150"`
	Units       float64 `json:"units"       binding:"gte=0,lte=30"`
	Description string  `json:"description" binding:"max=2000"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Units       float64 `json:"units"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}
