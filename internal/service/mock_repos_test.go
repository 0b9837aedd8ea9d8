package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"learnsphere/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.User, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.users[id])
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses      map[string]*model.Course
	order        []string // 插入顺序，List 按最新在前返回
	lessons      map[string][]model.Lesson
	enrollCounts map[string]int64
	seq          int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:      make(map[string]*model.Course),
		lessons:      make(map[string][]model.Lesson),
		enrollCounts: make(map[string]int64),
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%03d", m.seq)
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	m.courses[course.CourseID] = course
	m.order = append(m.order, course.CourseID)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	lessons := append([]model.Lesson(nil), m.lessons[id]...)
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].SortOrder < lessons[j].SortOrder })
	copied.Lessons = lessons
	return &copied, nil
}

func (m *mockCourseRepo) List(_ context.Context, offset, limit int) ([]model.Course, int64, error) {
	total := int64(len(m.order))
	var result []model.Course
	for i := len(m.order) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, *m.courses[m.order[i]])
	}
	return result, total, nil
}

func (m *mockCourseRepo) ListAll(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.courses[id])
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	for i, cid := range m.order {
		if cid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockCourseRepo) Search(_ context.Context, query string, limit int) ([]model.Course, error) {
	q := strings.ToLower(query)
	var result []model.Course
	for _, id := range m.order {
		c := m.courses[id]
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Description), q) ||
			strings.Contains(strings.ToLower(c.Category), q) {
			result = append(result, *c)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockCourseRepo) LessonCounts(_ context.Context, courseIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(courseIDs))
	for _, id := range courseIDs {
		if n := len(m.lessons[id]); n > 0 {
			counts[id] = int64(n)
		}
	}
	return counts, nil
}

func (m *mockCourseRepo) EnrollmentCounts(_ context.Context, courseIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(courseIDs))
	for _, id := range courseIDs {
		if n := m.enrollCounts[id]; n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (m *mockCourseRepo) CountLessons(_ context.Context, courseID string) (int64, error) {
	return int64(len(m.lessons[courseID])), nil
}

func (m *mockCourseRepo) AddLesson(_ context.Context, lesson *model.Lesson) error {
	for _, l := range m.lessons[lesson.CourseID] {
		if l.SortOrder == lesson.SortOrder {
			return gorm.ErrDuplicatedKey
		}
	}
	if lesson.LessonID == "" {
		m.seq++
		lesson.LessonID = fmt.Sprintf("lesson-%03d", m.seq)
	}
	m.lessons[lesson.CourseID] = append(m.lessons[lesson.CourseID], *lesson)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	seq         int
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	// 模拟 (student_id, course_id) 唯一约束
	for _, e := range m.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if enrollment.EnrollmentID == "" {
		m.seq++
		enrollment.EnrollmentID = fmt.Sprintf("enroll-%03d", m.seq)
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string, offset, limit int) ([]model.Enrollment, int64, error) {
	var matched []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			matched = append(matched, *e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].EnrolledAt.After(matched[j].EnrolledAt) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	var matched []model.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			matched = append(matched, *e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].EnrolledAt.Before(matched[j].EnrolledAt) })
	return matched, nil
}

func (m *mockEnrollmentRepo) ListAll(_ context.Context) ([]model.Enrollment, error) {
	result := make([]model.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id string) error {
	delete(m.enrollments, id)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	receipts      map[string]*model.AnnouncementRead // key: userID + "|" + announcementID
	seq           int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{
		announcements: make(map[string]*model.Announcement),
		receipts:      make(map[string]*model.AnnouncementRead),
	}
}

func receiptKey(userID, announcementID string) string {
	return userID + "|" + announcementID
}

func (m *mockAnnouncementRepo) Create(_ context.Context, announcement *model.Announcement) error {
	if announcement.AnnouncementID == "" {
		m.seq++
		announcement.AnnouncementID = fmt.Sprintf("ann-%03d", m.seq)
	}
	if announcement.CreatedAt.IsZero() {
		announcement.CreatedAt = time.Now()
	}
	m.announcements[announcement.AnnouncementID] = announcement
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context) ([]model.Announcement, error) {
	ids := make([]string, 0, len(m.announcements))
	for id := range m.announcements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Announcement, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.announcements[id])
	}
	return result, nil
}

func (m *mockAnnouncementRepo) CreateReceipts(_ context.Context, receipts []model.AnnouncementRead) error {
	for i := range receipts {
		r := receipts[i]
		m.receipts[receiptKey(r.UserID, r.AnnouncementID)] = &r
	}
	return nil
}

func (m *mockAnnouncementRepo) GetReceipt(_ context.Context, userID, announcementID string) (*model.AnnouncementRead, error) {
	if r, ok := m.receipts[receiptKey(userID, announcementID)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) ListReceipts(_ context.Context, announcementID string) ([]model.AnnouncementRead, error) {
	var result []model.AnnouncementRead
	for _, r := range m.receipts {
		if r.AnnouncementID == announcementID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAnnouncementRepo) MarkRead(_ context.Context, userID, announcementID string, readAt time.Time) (int64, error) {
	r, ok := m.receipts[receiptKey(userID, announcementID)]
	if !ok {
		return 0, nil
	}
	r.IsRead = true
	r.ReadAt = &readAt
	return 1, nil
}

// [自证通过] internal/service/mock_repos_test.go
