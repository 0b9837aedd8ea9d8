package dto

// ── 课程目录模块 DTO ──

// CreateCourseRequest 创建课程请求
// price 以字符串传入（前端表单原样提交），无法解析时按 0 处理
type CreateCourseRequest struct {
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty"`
	Category    string `json:"category"    binding:"omitempty,max=50"`
	Level       string `json:"level"       binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Duration    int    `json:"duration"    binding:"omitempty,min=0"`
	Price       string `json:"price"       binding:"omitempty"`
	Status      string `json:"status"      binding:"omitempty,oneof=DRAFT PUBLISHED"`
	TeacherID   string `json:"teacher_id"  binding:"required,uuid"`
}

// UpdateCourseRequest 更新课程请求（仅更新非 nil 字段）
type UpdateCourseRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty"`
	Category    *string `json:"category"    binding:"omitempty,max=50"`
	Level       *string `json:"level"       binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Duration    *int    `json:"duration"    binding:"omitempty,min=0"`
	Price       *string `json:"price"       binding:"omitempty"`
	Status      *string `json:"status"      binding:"omitempty,oneof=DRAFT PUBLISHED"`
}

// AddLessonRequest 追加课时请求
type AddLessonRequest struct {
	Title     string `json:"title"      binding:"required,min=1,max=200"`
	Content   string `json:"content"    binding:"omitempty"`
	Duration  int    `json:"duration"   binding:"omitempty,min=0"`
	SortOrder int    `json:"sort_order" binding:"required,min=1"`
}

// CourseSummaryResponse 目录列表项：课程字段 + 派生统计
type CourseSummaryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Duration    int    `json:"duration"`
	Price       string `json:"price"`    // 格式化为 "%.2f"
	Status      string `json:"status"`
	Lessons     int64  `json:"lessons"`  // 课时数
	Students    int64  `json:"students"` // 报名人数
	CreatedAt   string `json:"created_at"`
}

// LessonResponse 课时响应
type LessonResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Duration  int    `json:"duration"`
	SortOrder int    `json:"sort_order"`
}

// CourseDetailResponse 课程详情：含按 sort_order 升序的课时与教师公开字段
type CourseDetailResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Level       string                 `json:"level"`
	Duration    int                    `json:"duration"`
	Price       string                 `json:"price"`
	Status      string                 `json:"status"`
	Teacher     *TeacherPublicResponse `json:"teacher,omitempty"`
	Lessons     []LessonResponse       `json:"lessons"`
	CreatedAt   string                 `json:"created_at"`
}
