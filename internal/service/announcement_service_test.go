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

func setupTestAnnouncementService() (AnnouncementService, *mockAnnouncementRepo, *mockUserRepo) {
	userRepo := newMockUserRepo()
	announceRepo := newMockAnnouncementRepo()
	repo := &repository.Repository{
		User:         userRepo,
		Course:       newMockCourseRepo(),
		Enrollment:   newMockEnrollmentRepo(),
		Announcement: announceRepo,
	}
	svc := NewAnnouncementService(repo, zap.NewNop())
	return svc, announceRepo, userRepo
}

func seedUsers(userRepo *mockUserRepo, n int) {
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("user-%03d", i)
		userRepo.users[id] = &model.User{
			UserID: id,
			Name:   fmt.Sprintf("用户%d", i),
			Email:  id + "@example.com",
			Role:   model.RoleStudent,
		}
	}
}

// ── Create 测试 ──

func TestAnnouncementService_Create_AdminOnly(t *testing.T) {
	svc, _, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 2)

	req := &dto.CreateAnnouncementRequest{Title: "维护通知", Content: "今晚停机"}

	_, err := svc.Create(context.Background(), "user-001", model.RoleStudent, req)
	if !errors.Is(err, ErrAdminOnly) {
		t.Errorf("期望 ErrAdminOnly，实际: %v", err)
	}
}

func TestAnnouncementService_Create_EmptyFieldsRejected(t *testing.T) {
	svc, announceRepo, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 2)

	// 纯空白 title 同样拒绝
	req := &dto.CreateAnnouncementRequest{Title: "   ", Content: "内容"}

	_, err := svc.Create(context.Background(), "admin-001", model.RoleAdmin, req)
	if !errors.Is(err, ErrAnnouncementFields) {
		t.Errorf("期望 ErrAnnouncementFields，实际: %v", err)
	}
	if len(announceRepo.announcements) != 0 || len(announceRepo.receipts) != 0 {
		t.Error("校验失败时不应落库任何公告或回执")
	}
}

func TestAnnouncementService_Create_FanOutReceipts(t *testing.T) {
	svc, announceRepo, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 3)

	req := &dto.CreateAnnouncementRequest{Title: "新课上线", Content: "欢迎报名"}

	result, err := svc.Create(context.Background(), "admin-001", model.RoleAdmin, req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Target != model.AnnouncementTargetAll {
		t.Errorf("target 缺省应为 ALL，实际=%s", result.Target)
	}
	if result.Status != model.AnnouncementStatusActive {
		t.Errorf("新公告应为 ACTIVE，实际=%s", result.Status)
	}

	receipts, err := announceRepo.ListReceipts(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("ListReceipts 应成功: %v", err)
	}
	if len(receipts) != 3 {
		t.Fatalf("期望每个既有用户恰好一条回执，共 3 条，实际 %d 条", len(receipts))
	}
	for _, r := range receipts {
		if r.IsRead {
			t.Errorf("新回执应为未读: user=%s", r.UserID)
		}
	}
}

// ── ListForUser / GetForUser 测试 ──

func TestAnnouncementService_ListForUser_ReadState(t *testing.T) {
	svc, _, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 2)

	created, err := svc.Create(context.Background(), "admin-001", model.RoleAdmin,
		&dto.CreateAnnouncementRequest{Title: "通知", Content: "内容"})
	if err != nil {
		t.Fatalf("预置公告失败: %v", err)
	}

	list, err := svc.ListForUser(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("ListForUser 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条公告，实际 %d 条", len(list))
	}
	if list[0].IsRead {
		t.Error("未标记前应为未读")
	}

	if err := svc.MarkRead(context.Background(), "user-001", created.ID); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	detail, err := svc.GetForUser(context.Background(), "user-001", created.ID)
	if err != nil {
		t.Fatalf("GetForUser 应成功: %v", err)
	}
	if !detail.IsRead {
		t.Error("标记后应为已读")
	}

	// 其他用户的已读状态不受影响
	other, err := svc.GetForUser(context.Background(), "user-002", created.ID)
	if err != nil {
		t.Fatalf("GetForUser 应成功: %v", err)
	}
	if other.IsRead {
		t.Error("仅标记用户自身的回执")
	}
}

// ── MarkRead 测试 ──

func TestAnnouncementService_MarkRead_Idempotent(t *testing.T) {
	svc, _, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 1)

	created, err := svc.Create(context.Background(), "admin-001", model.RoleAdmin,
		&dto.CreateAnnouncementRequest{Title: "通知", Content: "内容"})
	if err != nil {
		t.Fatalf("预置公告失败: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.MarkRead(context.Background(), "user-001", created.ID); err != nil {
			t.Fatalf("第 %d 次 MarkRead 应幂等成功: %v", i+1, err)
		}
	}
}

func TestAnnouncementService_MarkRead_AnnouncementNotFound(t *testing.T) {
	svc, _, userRepo := setupTestAnnouncementService()
	seedUsers(userRepo, 1)

	err := svc.MarkRead(context.Background(), "user-001", "nonexistent")
	if !errors.Is(err, ErrAnnouncementNotFound) {
		t.Errorf("期望 ErrAnnouncementNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/announcement_service_test.go
