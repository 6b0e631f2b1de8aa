package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetTodayProgress aggregates today's sessions live; nothing is persisted
// until finalization.
func (handler *Handler) GetTodayProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	location := requestLocation(c, user)
	today := nominalToday(location)

	result, err := handler.progress.ComputeDailyProgress(user.ID, today, location)
	if err != nil {
		return storeFailure(c, "compute progress", err)
	}

	return c.JSON(fiber.Map{
		"date":         nominalDateString(result.Date),
		"minutes_read": result.MinutesRead,
		"goal_minutes": result.GoalMinutes,
		"goal_met":     result.GoalMet,
	})
}

// GetDayDetail reads the persisted record for an arbitrary past date. A date
// with no history answers with zeroes, never an error.
func (handler *Handler) GetDayDetail(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseNominalDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	location := requestLocation(c, user)

	detail, err := handler.streaks.GetDayDetail(user.ID, day, location)
	if err != nil {
		return storeFailure(c, "fetch day", err)
	}

	return c.JSON(fiber.Map{
		"date":          nominalDateString(detail.Date),
		"minutes_read":  detail.MinutesRead,
		"goal_met":      detail.GoalMet,
		"freeze_used":   detail.FreezeUsed,
		"session_count": detail.SessionCount,
		"goal_minutes":  detail.GoalMinutes,
	})
}

// GetDays lists the finalized rows in an inclusive nominal-date range.
func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, err := parseNominalDateParam(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseNominalDateParam(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	rows, err := handler.streaks.ListDayHistory(user.ID, from, to)
	if err != nil {
		return storeFailure(c, "fetch days", err)
	}

	days := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		days = append(days, fiber.Map{
			"date":         nominalDateString(row.Date),
			"minutes_read": row.MinutesRead,
			"goal_met":     row.GoalMet,
			"freeze_used":  row.FreezeUsed,
		})
	}
	return c.JSON(days)
}

// FinalizeDay is the entry point for the end-of-day scheduler. Reruns and
// concurrent duplicates settle on the same committed state.
func (handler *Handler) FinalizeDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseNominalDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	location := requestLocation(c, user)

	result, err := handler.streaks.FinalizeDay(user.ID, day, location)
	if err != nil {
		return storeFailure(c, "finalize day", err)
	}

	return c.JSON(fiber.Map{
		"date":           nominalDateString(result.Progress.Date),
		"minutes_read":   result.Progress.MinutesRead,
		"goal_met":       result.Progress.GoalMet,
		"current_streak": result.Streak.CurrentStreak,
		"longest_streak": result.Streak.LongestStreak,
		"freeze_count":   result.Streak.FreezeCount,
		"advanced":       result.Advanced,
		"freezes_spent":  result.FreezesSpent,
	})
}

func nominalToday(location *time.Location) time.Time {
	return nominalDateOfNow(time.Now().UTC(), location)
}
