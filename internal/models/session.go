package models

import "time"

// Session is the server-side half of a browser session. The cookie carries
// the ID; logout and the CLI revoke the row.
type Session struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    int64      `gorm:"not null;index"`
	Login     string     `gorm:"not null;index"`
	UserAgent string     `gorm:"not null;default:''"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time
}

func (Session) TableName() string {
	return "sessions"
}

func (session Session) ActiveAt(now time.Time) bool {
	return session.RevokedAt == nil && now.Before(session.ExpiresAt)
}
