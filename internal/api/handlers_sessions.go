package api

import (
	"errors"
	"time"

	"github.com/foliotrack/folio/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := sessionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	session, created, err := handler.sessions.RecordSession(user.ID, services.SessionInput{
		ClientToken:     input.ClientToken,
		BookTitle:       input.BookTitle,
		StartedAt:       input.StartedAt,
		DurationSeconds: input.DurationSeconds,
	})
	if err != nil {
		if errors.Is(err, services.ErrSessionInputInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid session")
		}
		return storeFailure(c, "record session", err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(session)
}

func (handler *Handler) GetSessions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	location := requestLocation(c, user)
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

	sessions, err := handler.sessions.ListSessionsForDays(user.ID, from, to, location)
	if err != nil {
		return storeFailure(c, "fetch sessions", err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
}
