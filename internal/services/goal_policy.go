package services

import (
	"errors"

	"github.com/foliotrack/folio/internal/models"
)

var ErrDailyGoalOutOfRange = errors.New("daily goal out of range")

// ValidateDailyGoalMinutes accepts whole minutes in [1, 480]. Fractional input
// never reaches this check; request decoding rejects it.
func ValidateDailyGoalMinutes(minutes int) error {
	if minutes < models.MinDailyGoalMinutes || minutes > models.MaxDailyGoalMinutes {
		return ErrDailyGoalOutOfRange
	}
	return nil
}
