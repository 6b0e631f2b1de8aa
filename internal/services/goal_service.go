package services

import (
	"errors"

	"github.com/foliotrack/folio/internal/models"
)

var ErrSaveGoalFailed = errors.New("save daily goal failed")

type GoalUserRepository interface {
	UpdateDailyGoal(userID uint, minutes int) error
	UpdateProfile(userID uint, displayName string, timezone string) error
	LoadGoalSettings(userID uint) (models.User, error)
}

type GoalService struct {
	users GoalUserRepository
}

func NewGoalService(users GoalUserRepository) *GoalService {
	return &GoalService{users: users}
}

// SetDailyGoal validates and persists the user's daily goal. Validation runs
// before any storage access.
func (service *GoalService) SetDailyGoal(userID uint, minutes int) error {
	if err := ValidateDailyGoalMinutes(minutes); err != nil {
		return err
	}
	if err := service.users.UpdateDailyGoal(userID, minutes); err != nil {
		return ErrSaveGoalFailed
	}
	return nil
}

// UpdateProfile stores display name and time zone. An unknown zone is not an
// error downstream (the resolver degrades to UTC), but rejecting it here gives
// the client a correctable failure instead of silent UTC bookkeeping.
func (service *GoalService) UpdateProfile(userID uint, displayName string, timezone string) error {
	if timezone != "" && !IsKnownTimezone(timezone) {
		return ErrTimezoneUnknown
	}
	if timezone == "" {
		timezone = models.DefaultTimezone
	}
	return service.users.UpdateProfile(userID, displayName, timezone)
}
