package models

import "time"

// MaxFreezeCount caps the freeze balance; milestone awards never push past it.
const MaxFreezeCount = 5

// UserStreak is the compact rolling state the streak transition operates on.
// LastGoalMetDate (nominal) is the single source of truth for continuity and
// only ever advances. Invariant: LongestStreak >= CurrentStreak.
// FreezeUsedToday is a status flag for clients; double-charge protection for
// gap days comes from the persisted DailyProgress freeze_used rows.
type UserStreak struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"not null;uniqueIndex"`
	CurrentStreak   int  `gorm:"not null;default:0"`
	LongestStreak   int  `gorm:"not null;default:0"`
	LastGoalMetDate *time.Time
	FreezeCount     int  `gorm:"not null;default:0"`
	FreezeUsedToday bool `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
