package db

import (
	"github.com/foliotrack/folio/internal/models"
	"gorm.io/gorm"
)

type UserStreakRepository struct {
	database *gorm.DB
}

func NewUserStreakRepository(database *gorm.DB) *UserStreakRepository {
	return &UserStreakRepository{database: database}
}

func (repo *UserStreakRepository) FindByUser(userID uint) (models.UserStreak, bool, error) {
	streak := models.UserStreak{}
	result := repo.database.
		Where("user_id = ?", userID).
		Limit(1).
		Find(&streak)
	if result.Error != nil {
		return models.UserStreak{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserStreak{}, false, nil
	}
	return streak, true, nil
}

func (repo *UserStreakRepository) Save(streak *models.UserStreak) error {
	return repo.database.Save(streak).Error
}
