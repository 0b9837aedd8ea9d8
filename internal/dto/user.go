package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"omitempty,oneof=ADMIN TEACHER STUDENT"`
}

// UpdateUserRequest 更新用户信息请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}
