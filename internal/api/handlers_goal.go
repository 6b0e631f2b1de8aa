package api

import (
	"errors"

	"github.com/foliotrack/folio/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UpdateDailyGoal persists the caller's daily goal. The strict integer decode
// of the body rejects fractional minutes before validation even runs.
func (handler *Handler) UpdateDailyGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := goalInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "minutes must be a whole number")
	}

	if err := handler.goals.SetDailyGoal(user.ID, input.Minutes); err != nil {
		if errors.Is(err, services.ErrDailyGoalOutOfRange) {
			return apiError(c, fiber.StatusBadRequest, "minutes must be between 1 and 480")
		}
		return storeFailure(c, "save daily goal", err)
	}

	return c.JSON(fiber.Map{"daily_goal_minutes": input.Minutes})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.goals.UpdateProfile(user.ID, input.DisplayName, input.Timezone); err != nil {
		if errors.Is(err, services.ErrTimezoneUnknown) {
			return apiError(c, fiber.StatusBadRequest, "unknown time zone")
		}
		return storeFailure(c, "save profile", err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
