package services

import (
	"errors"
	"time"

	"github.com/foliotrack/folio/internal/models"
)

var ErrComputeProgressFailed = errors.New("compute daily progress failed")

type ProgressSessionReader interface {
	SumDurationSeconds(userID uint, start time.Time, end time.Time) (int64, error)
	CountInRange(userID uint, start time.Time, end time.Time) (int64, error)
}

type ProgressUserReader interface {
	LoadGoalSettings(userID uint) (models.User, error)
}

// DailyProgressResult is one day's aggregation outcome. Date is nominal.
type DailyProgressResult struct {
	Date        time.Time
	MinutesRead int
	GoalMinutes *int
	GoalMet     bool
}

type ProgressService struct {
	sessions ProgressSessionReader
	users    ProgressUserReader
}

func NewProgressService(sessions ProgressSessionReader, users ProgressUserReader) *ProgressService {
	return &ProgressService{
		sessions: sessions,
		users:    users,
	}
}

// ComputeDailyProgress sums the session durations falling inside the local
// day labeled by the nominal date and checks the result against the user's
// goal. It performs no writes, so reruns with unchanged session data always
// produce the same answer. Zero matching sessions is a valid zero result,
// never an error.
func (service *ProgressService) ComputeDailyProgress(userID uint, nominal time.Time, location *time.Location) (DailyProgressResult, error) {
	start, end := NominalDayBounds(nominal, location)

	totalSeconds, err := service.sessions.SumDurationSeconds(userID, start, end)
	if err != nil {
		return DailyProgressResult{}, err
	}

	user, err := service.users.LoadGoalSettings(userID)
	if err != nil {
		return DailyProgressResult{}, err
	}

	minutes := RoundSecondsToMinutes(totalSeconds)
	return DailyProgressResult{
		Date:        normalizeNominal(nominal),
		MinutesRead: minutes,
		GoalMinutes: user.DailyGoalMinutes,
		GoalMet:     user.DailyGoalMinutes != nil && minutes >= *user.DailyGoalMinutes,
	}, nil
}

// RoundSecondsToMinutes rounds to the nearest whole minute, ties rounding up.
func RoundSecondsToMinutes(totalSeconds int64) int {
	if totalSeconds <= 0 {
		return 0
	}
	return int((totalSeconds + 30) / 60)
}
