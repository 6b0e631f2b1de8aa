package api

import (
	"time"

	"github.com/foliotrack/folio/internal/db"
	"github.com/foliotrack/folio/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repos        *db.Repositories
	secretKey    []byte
	cookieSecure bool

	auth     *services.AuthService
	goals    *services.GoalService
	sessions *services.SessionService
	progress *services.ProgressService
	streaks  *services.StreakService
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool) *Handler {
	repos := db.NewRepositories(database)
	progress := services.NewProgressService(repos.Sessions, repos.Users)

	return &Handler{
		repos:        repos,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		auth:         services.NewAuthService(repos.Users),
		goals:        services.NewGoalService(repos.Users),
		sessions:     services.NewSessionService(repos.Sessions),
		progress:     progress,
		streaks: services.NewStreakService(
			progress,
			repos,
			repos.DailyProgress,
			repos.UserStreaks,
			repos.Sessions,
			repos.Users,
		),
	}
}

type credentialsInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
	Timezone    string `json:"timezone" form:"timezone"`
	RememberMe  bool   `json:"remember_me" form:"remember_me"`
}

type recoverInput struct {
	RecoveryCode string `json:"recovery_code" form:"recovery_code"`
}

type goalInput struct {
	Minutes int `json:"minutes" form:"minutes"`
}

type profileInput struct {
	DisplayName string `json:"display_name" form:"display_name"`
	Timezone    string `json:"timezone" form:"timezone"`
}

type sessionInput struct {
	ClientToken     string    `json:"client_token" form:"client_token"`
	BookTitle       string    `json:"book_title" form:"book_title"`
	StartedAt       time.Time `json:"started_at" form:"started_at"`
	DurationSeconds int       `json:"duration_seconds" form:"duration_seconds"`
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)
