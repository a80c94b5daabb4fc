package entities

import "time"

type AuditEventType string

const (
	AuditEventBook AuditEventType = "book"
	AuditEventAuth AuditEventType = "auth"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records an admin mutation or authentication attempt.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	EventType   AuditEventType `gorm:"index;size:20" json:"event_type"`
	Action      string         `gorm:"index;size:50" json:"action"` // e.g. "book_create", "login"
	Description string         `gorm:"size:512" json:"description"`
	EntityID    *uint          `json:"entity_id,omitempty"`
	EntitySlug  string         `gorm:"size:256" json:"entity_slug,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	Status      AuditStatus    `gorm:"size:10" json:"status"`
	ErrorMsg    string         `gorm:"size:512" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
