package dto

// ── 报名模块 DTO ──

// EnrollRequest 报名请求
type EnrollRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
}

// UpdateProgressRequest 更新进度请求
// 取值范围在 Service 层校验（0-100），越界返回参数错误而非静默入库
type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// EnrollmentListRequest 按学生查询报名列表
type EnrollmentListRequest struct {
	PaginationRequest
	StudentID string `form:"studentId" binding:"required,uuid"`
}

// EnrollmentResponse 报名响应
type EnrollmentResponse struct {
	ID               string   `json:"id"`
	StudentID        string   `json:"student_id"`
	CourseID         string   `json:"course_id"`
	Progress         int      `json:"progress"`
	CompletedLessons []string `json:"completed_lessons"`
	EnrolledAt       string   `json:"enrolled_at"`
	LastAccessedAt   string   `json:"last_accessed_at,omitempty"`
	CourseTitle      string   `json:"course_title,omitempty"`
}
