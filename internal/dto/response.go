package dto

// ── 分页请求 ──

// PaginationRequest 通用分页参数
// page 低于 1 取 1；limit 收敛到 [1,50]（归一化在 Service 层完成）
type PaginationRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// TeacherPublicResponse 课程详情中的授课教师公开字段
type TeacherPublicResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// [自证通过] internal/dto/response.go
