package api

import (
	"log"
	"time"

	"github.com/foliotrack/folio/internal/models"
	"github.com/foliotrack/folio/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// storeFailure logs the underlying cause and returns the generic failure the
// caller sees; internals never leak into responses.
func storeFailure(c *fiber.Ctx, operation string, err error) error {
	log.Printf("%s: %v", operation, err)
	return apiError(c, fiber.StatusInternalServerError, operation+" failed")
}

// requestLocation picks the zone for day bookkeeping: explicit tz query
// parameter first, then the user's stored zone. Bad names degrade to UTC.
func requestLocation(c *fiber.Ctx, user *models.User) *time.Location {
	if tz := c.Query("tz"); tz != "" {
		return services.LocationOrUTC(tz)
	}
	if user != nil && user.Timezone != "" {
		return services.LocationOrUTC(user.Timezone)
	}
	return time.UTC
}

func parseNominalDateParam(raw string) (time.Time, error) {
	return services.NominalDate(raw)
}

func nominalDateString(value time.Time) string {
	return services.LocalDateString(value.UTC(), time.UTC)
}

func nominalDatePointerString(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := nominalDateString(*value)
	return &formatted
}
