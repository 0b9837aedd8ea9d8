package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 创建公告请求
// title/content 必填校验在 Service 层完成（空串返回参数错误且不产生任何行）
type CreateAnnouncementRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=500"`
	Target   string  `json:"target"    binding:"omitempty,oneof=ALL HOMEPAGE INBOX"`
}

// AnnouncementResponse 公告响应（含当前用户的已读状态）
type AnnouncementResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	ImageURL  *string `json:"image_url,omitempty"`
	Status    string  `json:"status"`
	Target    string  `json:"target"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_at"`
	IsRead    bool    `json:"is_read"`
	ReadAt    string  `json:"read_at,omitempty"`
}
