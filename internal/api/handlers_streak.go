package api

import (
	"time"

	"github.com/foliotrack/folio/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetStreakStatus is purely advisory; it never mutates streak or freeze
// state.
func (handler *Handler) GetStreakStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	location := requestLocation(c, user)
	status, err := handler.streaks.CheckStreakStatus(user.ID, time.Now().UTC(), location)
	if err != nil {
		return storeFailure(c, "fetch streak status", err)
	}

	return c.JSON(fiber.Map{
		"current_streak":     status.CurrentStreak,
		"longest_streak":     status.LongestStreak,
		"last_goal_met_date": nominalDatePointerString(status.LastGoalMetDate),
		"freeze_count":       status.FreezeCount,
		"freeze_used_today":  status.FreezeUsedToday,
		"is_at_risk":         status.IsAtRisk,
		"missed_days":        status.MissedDays,
	})
}

func nominalDateOfNow(now time.Time, location *time.Location) time.Time {
	return services.NominalDateOf(now, location)
}
