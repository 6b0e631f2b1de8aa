package services

import (
	"errors"
	"time"

	"github.com/foliotrack/folio/internal/models"
)

var (
	ErrFinalizeDayFailed  = errors.New("finalize day failed")
	ErrStreakStatusFailed = errors.New("load streak status failed")
	ErrDayDetailFailed    = errors.New("load day detail failed")
)

type StreakDayStore interface {
	FindByUserAndDay(userID uint, day time.Time) (models.DailyProgress, bool, error)
	Create(progress *models.DailyProgress) error
	Save(progress *models.DailyProgress) error
	ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error)
	ListFreezeUsedInRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error)
}

type StreakStateStore interface {
	FindByUser(userID uint) (models.UserStreak, bool, error)
	Save(streak *models.UserStreak) error
}

// AtomicStore runs fn against transaction-scoped stores. The streak mutation
// and its freeze spends for one (user, day) commit together or not at all.
type AtomicStore interface {
	RunAtomically(userID uint, fn func(days StreakDayStore, streaks StreakStateStore) error) error
}

type StreakService struct {
	progress *ProgressService
	store    AtomicStore
	days     StreakDayStore
	streaks  StreakStateStore
	sessions ProgressSessionReader
	users    ProgressUserReader
}

func NewStreakService(
	progress *ProgressService,
	store AtomicStore,
	days StreakDayStore,
	streaks StreakStateStore,
	sessions ProgressSessionReader,
	users ProgressUserReader,
) *StreakService {
	return &StreakService{
		progress: progress,
		store:    store,
		days:     days,
		streaks:  streaks,
		sessions: sessions,
		users:    users,
	}
}

// FinalizeDayResult reports what one finalization pass did.
type FinalizeDayResult struct {
	Progress     DailyProgressResult
	Streak       models.UserStreak
	Advanced     bool
	FreezesSpent int
}

// FinalizeDay aggregates the given local day, persists the DailyProgress row,
// and, when the goal was met, applies the streak transition with any freeze
// consumption in one atomic unit. The transition's same-day no-op makes the
// whole operation safe to rerun; a concurrent duplicate exits without a
// second increment.
func (service *StreakService) FinalizeDay(userID uint, nominal time.Time, location *time.Location) (FinalizeDayResult, error) {
	computed, err := service.progress.ComputeDailyProgress(userID, nominal, location)
	if err != nil {
		return FinalizeDayResult{}, err
	}

	outcome := FinalizeDayResult{Progress: computed}
	err = service.store.RunAtomically(userID, func(days StreakDayStore, streaks StreakStateStore) error {
		if err := upsertProgressRow(days, userID, computed); err != nil {
			return err
		}

		streak, found, err := streaks.FindByUser(userID)
		if err != nil {
			return err
		}
		if !found {
			streak = models.UserStreak{UserID: userID}
		}

		if !computed.GoalMet {
			outcome.Streak = streak
			return nil
		}

		covered, err := coveredGapDays(days, streak, computed.Date, userID)
		if err != nil {
			return err
		}

		transition := AdvanceStreak(streak, computed.Date, true, covered)
		outcome.Streak = transition.Streak
		outcome.Advanced = transition.Advanced
		outcome.FreezesSpent = len(transition.FreezesSpent)
		if !transition.Advanced {
			return nil
		}

		for _, spentDay := range transition.FreezesSpent {
			if err := markDayFreezeUsed(days, userID, spentDay); err != nil {
				return err
			}
		}

		return streaks.Save(&transition.Streak)
	})
	if err != nil {
		return FinalizeDayResult{}, err
	}
	return outcome, nil
}

// StreakStatus is the advisory answer to "is this streak about to break".
// FreezeUsedToday echoes whether the most recent advance was freeze-bridged.
type StreakStatus struct {
	CurrentStreak   int
	LongestStreak   int
	LastGoalMetDate *time.Time
	FreezeCount     int
	FreezeUsedToday bool
	IsAtRisk        bool
	MissedDays      int
}

// CheckStreakStatus evaluates streak risk for the local day containing now.
// It mutates nothing: a missing streak record is the zero state, a gap whose
// trailing day is freeze-covered is safe, anything else is at risk with the
// count of whole local days elapsed since the last goal day. Day counting
// stays on the nominal calendar axis throughout.
func (service *StreakService) CheckStreakStatus(userID uint, now time.Time, location *time.Location) (StreakStatus, error) {
	streak, found, err := service.streaks.FindByUser(userID)
	if err != nil {
		return StreakStatus{}, err
	}
	if !found || streak.LastGoalMetDate == nil {
		return StreakStatus{}, nil
	}

	status := StreakStatus{
		CurrentStreak:   streak.CurrentStreak,
		LongestStreak:   streak.LongestStreak,
		LastGoalMetDate: streak.LastGoalMetDate,
		FreezeCount:     streak.FreezeCount,
		FreezeUsedToday: streak.FreezeUsedToday,
	}

	today := NominalDateOf(now, location)
	gap := NominalDaysBetween(*streak.LastGoalMetDate, today)
	if gap <= 1 {
		return status, nil
	}

	yesterday := PreviousNominalDate(today)
	row, rowFound, err := service.days.FindByUserAndDay(userID, yesterday)
	if err != nil {
		return StreakStatus{}, err
	}
	if rowFound && row.FreezeUsed {
		return status, nil
	}

	status.IsAtRisk = true
	status.MissedDays = gap - 1
	return status, nil
}

// ListDayHistory returns the persisted progress rows whose nominal dates fall
// in [fromNominal, toNominal]. Days that were never finalized have no row and
// simply do not appear.
func (service *StreakService) ListDayHistory(userID uint, fromNominal time.Time, toNominal time.Time) ([]models.DailyProgress, error) {
	from := normalizeNominal(fromNominal)
	to := normalizeNominal(toNominal).AddDate(0, 0, 1)
	return service.days.ListByUserRange(userID, from, to)
}

// DayDetail combines the persisted progress row for a past date with live
// session data and the goal currently in force.
type DayDetail struct {
	Date         time.Time
	MinutesRead  int
	GoalMet      bool
	FreezeUsed   bool
	SessionCount int64
	GoalMinutes  *int
}

// GetDayDetail never fails on absent history; a day with no record reads as
// zero progress.
func (service *StreakService) GetDayDetail(userID uint, nominal time.Time, location *time.Location) (DayDetail, error) {
	detail := DayDetail{Date: normalizeNominal(nominal)}

	row, found, err := service.days.FindByUserAndDay(userID, nominal)
	if err != nil {
		return DayDetail{}, err
	}
	if found {
		detail.MinutesRead = row.MinutesRead
		detail.GoalMet = row.GoalMet
		detail.FreezeUsed = row.FreezeUsed
	}

	start, end := NominalDayBounds(nominal, location)
	count, err := service.sessions.CountInRange(userID, start, end)
	if err != nil {
		return DayDetail{}, err
	}
	detail.SessionCount = count

	user, err := service.users.LoadGoalSettings(userID)
	if err != nil {
		return DayDetail{}, err
	}
	detail.GoalMinutes = user.DailyGoalMinutes

	return detail, nil
}

func upsertProgressRow(days StreakDayStore, userID uint, computed DailyProgressResult) error {
	row, found, err := days.FindByUserAndDay(userID, computed.Date)
	if err != nil {
		return err
	}
	if !found {
		row = models.DailyProgress{UserID: userID, Date: computed.Date}
	}
	row.MinutesRead = computed.MinutesRead
	row.GoalMet = computed.GoalMet
	if !found {
		return days.Create(&row)
	}
	return days.Save(&row)
}

func markDayFreezeUsed(days StreakDayStore, userID uint, day time.Time) error {
	row, found, err := days.FindByUserAndDay(userID, day)
	if err != nil {
		return err
	}
	if !found {
		row = models.DailyProgress{
			UserID:     userID,
			Date:       normalizeNominal(day),
			FreezeUsed: true,
		}
		return days.Create(&row)
	}
	if row.FreezeUsed {
		return nil
	}
	row.FreezeUsed = true
	return days.Save(&row)
}

func coveredGapDays(days StreakDayStore, streak models.UserStreak, day time.Time, userID uint) (map[string]bool, error) {
	if streak.LastGoalMetDate == nil {
		return nil, nil
	}
	if NominalDaysBetween(*streak.LastGoalMetDate, day) <= 1 {
		return nil, nil
	}

	from := normalizeNominal(*streak.LastGoalMetDate).AddDate(0, 0, 1)
	rows, err := days.ListFreezeUsedInRange(userID, from, normalizeNominal(day))
	if err != nil {
		return nil, err
	}

	covered := make(map[string]bool, len(rows))
	for _, row := range rows {
		covered[nominalKey(row.Date)] = true
	}
	return covered, nil
}
