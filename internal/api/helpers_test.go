package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/foliotrack/folio/internal/db"
	"github.com/foliotrack/folio/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "folio-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", false)
	app := fiber.New()
	RegisterRoutes(app, handler)

	return app, handler
}

func createTestUser(t *testing.T, handler *Handler, email string, timezone string, goalMinutes *int) *models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:            email,
		PasswordHash:     string(passwordHash),
		Timezone:         timezone,
		DailyGoalMinutes: goalMinutes,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func authCookieValue(t *testing.T, handler *Handler, user *models.User) string {
	t.Helper()

	token, err := handler.buildToken(user, defaultAuthTokenTTL)
	if err != nil {
		t.Fatalf("build auth token: %v", err)
	}
	return token
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
	}

	request := httptest.NewRequest(method, target, &body)
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return request
}

func authenticate(request *http.Request, cookieValue string) {
	request.Header.Set("Cookie", authCookieName+"="+cookieValue)
}

func decodeJSONBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	decoded := make(map[string]any)
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}
