package api

import (
	"strings"
	"time"

	"github.com/foliotrack/folio/internal/models"
	"github.com/foliotrack/folio/internal/security"
	"github.com/foliotrack/folio/internal/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(credentials.Email, credentials.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid credentials")
	}
	if err := services.ValidateRegistrationPassword(password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "password too short")
	}
	if credentials.Timezone != "" && !services.IsKnownTimezone(credentials.Timezone) {
		return apiError(c, fiber.StatusBadRequest, "unknown time zone")
	}

	exists, err := handler.auth.RegistrationEmailExists(email)
	if err != nil {
		return storeFailure(c, "create account", err)
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return storeFailure(c, "create account", err)
	}

	recoveryCode, recoveryHash, err := generateRecoveryCodeHash()
	if err != nil {
		return storeFailure(c, "create account", err)
	}

	timezone := credentials.Timezone
	if timezone == "" {
		timezone = models.DefaultTimezone
	}

	user := models.User{
		Email:            email,
		PasswordHash:     string(passwordHash),
		RecoveryCodeHash: recoveryHash,
		DisplayName:      credentials.DisplayName,
		Timezone:         timezone,
		CreatedAt:        time.Now().UTC(),
	}
	if err := handler.auth.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return storeFailure(c, "create session", err)
	}

	// The recovery code is shown exactly once; only its hash survives.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"recovery_code": recoveryCode,
		"user": fiber.Map{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"timezone":     user.Timezone,
		},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(credentials.Email, credentials.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid credentials")
	}

	user, err := handler.auth.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return storeFailure(c, "create session", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Recover signs the user in with a one-time recovery code and rotates it.
func (handler *Handler) Recover(c *fiber.Ctx) error {
	input := recoverInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	code := strings.TrimSpace(input.RecoveryCode)
	if err := services.ValidateRecoveryCodeFormat(code); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
	}

	user, err := handler.auth.FindUserByRecoveryCode(code)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid recovery code")
	}

	freshCode, freshHash, err := generateRecoveryCodeHash()
	if err != nil {
		return storeFailure(c, "rotate recovery code", err)
	}
	if err := handler.auth.RotateRecoveryCode(user.ID, freshHash); err != nil {
		return storeFailure(c, "rotate recovery code", err)
	}

	if err := handler.setAuthCookie(c, user, true); err != nil {
		return storeFailure(c, "create session", err)
	}
	return c.JSON(fiber.Map{"recovery_code": freshCode})
}

func generateRecoveryCodeHash() (string, string, error) {
	code, err := security.RecoveryCode()
	if err != nil {
		return "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return code, string(hash), nil
}
