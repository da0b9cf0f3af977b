package dto

// ── 学期模块 DTO ──

// CreateAcademicPeriodRequest 创建学期请求
type CreateAcademicPeriodRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	StartDate string `json:"start_date" binding:"required,isodate"` // "2024-01-08"
	EndDate   string `json:"end_date"   binding:"required,isodate"` // "2024-05-10"
}

// UpdateAcademicPeriodRequest 更新学期请求
type UpdateAcademicPeriodRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	StartDate *string `json:"start_date" binding:"omitempty,isodate"`
	EndDate   *string `json:"end_date"   binding:"omitempty,isodate"`
	Status    *string `json:"status"     binding:"omitempty,oneof=open closed"`
}

// AcademicPeriodResponse 学期信息响应
type AcademicPeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
	Status    string `json:"status"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
