package db

import (
	"github.com/foliotrack/folio/internal/services"
	"gorm.io/gorm"
)

type Repositories struct {
	database *gorm.DB

	Users         *UserRepository
	Sessions      *ReadingSessionRepository
	DailyProgress *DailyProgressRepository
	UserStreaks   *UserStreakRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:      database,
		Users:         NewUserRepository(database),
		Sessions:      NewReadingSessionRepository(database),
		DailyProgress: NewDailyProgressRepository(database),
		UserStreaks:   NewUserStreakRepository(database),
	}
}

// RunAtomically executes fn against transaction-scoped stores. SQLite's
// single-writer model plus the transition's same-day no-op guarantee at most
// one committed streak advance per user per day.
func (repos *Repositories) RunAtomically(_ uint, fn func(days services.StreakDayStore, streaks services.StreakStateStore) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewDailyProgressRepository(tx), NewUserStreakRepository(tx))
	})
}
