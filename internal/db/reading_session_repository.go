package db

import (
	"time"

	"github.com/foliotrack/folio/internal/models"
	"gorm.io/gorm"
)

type ReadingSessionRepository struct {
	database *gorm.DB
}

func NewReadingSessionRepository(database *gorm.DB) *ReadingSessionRepository {
	return &ReadingSessionRepository{database: database}
}

func (repo *ReadingSessionRepository) Create(session *models.ReadingSession) error {
	return repo.database.Create(session).Error
}

func (repo *ReadingSessionRepository) FindByUserAndClientToken(userID uint, clientToken string) (models.ReadingSession, bool, error) {
	session := models.ReadingSession{}
	result := repo.database.
		Where("user_id = ? AND client_token = ?", userID, clientToken).
		Limit(1).
		Find(&session)
	if result.Error != nil {
		return models.ReadingSession{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ReadingSession{}, false, nil
	}
	return session, true, nil
}

func (repo *ReadingSessionRepository) ListByUserRange(userID uint, start time.Time, end time.Time) ([]models.ReadingSession, error) {
	sessions := make([]models.ReadingSession, 0)
	if err := repo.database.
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, start, end).
		Order("started_at ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// SumDurationSeconds totals the sessions starting inside [start, end).
func (repo *ReadingSessionRepository) SumDurationSeconds(userID uint, start time.Time, end time.Time) (int64, error) {
	var total int64
	if err := repo.database.Model(&models.ReadingSession{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, start, end).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *ReadingSessionRepository) CountInRange(userID uint, start time.Time, end time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ReadingSession{}).
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
