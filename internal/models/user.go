package models

import "time"

const (
	MinDailyGoalMinutes = 1
	MaxDailyGoalMinutes = 480

	DefaultTimezone = "UTC"
)

type User struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
	RecoveryCodeHash string
	DisplayName      string
	Timezone         string `gorm:"not null;default:UTC"`
	DailyGoalMinutes *int
	CreatedAt        time.Time `gorm:"not null"`
}
