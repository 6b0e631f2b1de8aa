package models

import "time"

// ReadingSession is an append-only record of one timed reading sitting.
// StartedAt is a UTC instant; daily bookkeeping derives local days from it.
type ReadingSession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_sessions_user_started;uniqueIndex:uidx_sessions_user_token" json:"-"`
	ClientToken     string    `gorm:"not null;uniqueIndex:uidx_sessions_user_token" json:"client_token"`
	BookTitle       string    `json:"book_title"`
	StartedAt       time.Time `gorm:"not null;index:idx_sessions_user_started" json:"started_at"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}
