package db

import (
	"time"

	"github.com/foliotrack/folio/internal/models"
	"gorm.io/gorm"
)

type DailyProgressRepository struct {
	database *gorm.DB
}

func NewDailyProgressRepository(database *gorm.DB) *DailyProgressRepository {
	return &DailyProgressRepository{database: database}
}

// FindByUserAndDay matches by nominal-day range rather than exact equality,
// so a date stored with any time-of-day component still resolves to its day.
func (repo *DailyProgressRepository) FindByUserAndDay(userID uint, day time.Time) (models.DailyProgress, bool, error) {
	dayStart, dayEnd := nominalDayWindow(day)
	row := models.DailyProgress{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date ASC, id ASC").
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return models.DailyProgress{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyProgress{}, false, nil
	}
	return row, true, nil
}

func (repo *DailyProgressRepository) Create(row *models.DailyProgress) error {
	return repo.database.Create(row).Error
}

func (repo *DailyProgressRepository) Save(row *models.DailyProgress) error {
	return repo.database.Save(row).Error
}

func (repo *DailyProgressRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error) {
	rows := make([]models.DailyProgress, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFreezeUsedInRange returns the freeze-covered days with dates in
// [from, to).
func (repo *DailyProgressRepository) ListFreezeUsedInRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error) {
	rows := make([]models.DailyProgress, 0)
	if err := repo.database.
		Where("user_id = ? AND freeze_used = ? AND date >= ? AND date < ?", userID, true, from, to).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func nominalDayWindow(day time.Time) (time.Time, time.Time) {
	normalized := day.UTC()
	start := time.Date(normalized.Year(), normalized.Month(), normalized.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
