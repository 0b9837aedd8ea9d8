package dto

// ── 管理面板统计 DTO ──

// StatsResponse 面板统计：全量集合上的纯聚合结果
type StatsResponse struct {
	TotalUsers       int              `json:"total_users"`
	TotalCourses     int              `json:"total_courses"`
	TotalEnrollments int              `json:"total_enrollments"`
	TotalTeachers    int              `json:"total_teachers"`
	TotalStudents    int              `json:"total_students"`
	TotalRevenue     float64          `json:"total_revenue"`
	CompletionRate   float64          `json:"completion_rate"` // 已完成报名占比，总数为 0 时取 0
	Categories       map[string]int   `json:"categories"`      // 固定枚举类目 → 课程数
}
