package models

import "time"

// DailyProgress is the per-user, per-day aggregation result. Date is a
// nominal UTC-midnight instant labeling the user's local calendar day, not a
// real event time. GoalMet is recomputed from MinutesRead on every
// aggregation; it is a derived cache.
type DailyProgress struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_progress_user_date"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_progress_user_date"`
	MinutesRead int       `gorm:"not null;default:0"`
	GoalMet     bool      `gorm:"not null;default:false"`
	FreezeUsed  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
