package services

import (
	"errors"
	"strings"
	"time"

	"github.com/foliotrack/folio/internal/models"
	"github.com/google/uuid"
)

var (
	ErrSessionInputInvalid   = errors.New("session input invalid")
	ErrSessionRecordFailed   = errors.New("record session failed")
	ErrSessionLoadFailed     = errors.New("load sessions failed")
	errSessionTokenMalformed = errors.New("session client token malformed")
)

type SessionRepository interface {
	Create(session *models.ReadingSession) error
	FindByUserAndClientToken(userID uint, clientToken string) (models.ReadingSession, bool, error)
	ListByUserRange(userID uint, start time.Time, end time.Time) ([]models.ReadingSession, error)
}

// SessionInput is one client-submitted reading sitting. ClientToken is a UUID
// the client mints once per sitting; resubmitting the same token is a no-op.
type SessionInput struct {
	ClientToken     string
	BookTitle       string
	StartedAt       time.Time
	DurationSeconds int
}

type SessionService struct {
	sessions SessionRepository
}

func NewSessionService(sessions SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// RecordSession appends one session event. Events are immutable once stored;
// duplicates collapse onto the first write via the client token.
func (service *SessionService) RecordSession(userID uint, input SessionInput) (models.ReadingSession, bool, error) {
	token, err := normalizeClientToken(input.ClientToken)
	if err != nil {
		return models.ReadingSession{}, false, ErrSessionInputInvalid
	}
	if input.DurationSeconds < 0 || input.StartedAt.IsZero() {
		return models.ReadingSession{}, false, ErrSessionInputInvalid
	}

	existing, found, err := service.sessions.FindByUserAndClientToken(userID, token)
	if err != nil {
		return models.ReadingSession{}, false, err
	}
	if found {
		return existing, false, nil
	}

	session := models.ReadingSession{
		UserID:          userID,
		ClientToken:     token,
		BookTitle:       strings.TrimSpace(input.BookTitle),
		StartedAt:       input.StartedAt.UTC(),
		DurationSeconds: input.DurationSeconds,
	}
	if err := service.sessions.Create(&session); err != nil {
		return models.ReadingSession{}, false, err
	}
	return session, true, nil
}

// ListSessionsForDays returns the sessions whose start instants fall inside
// the local days labeled by [fromNominal, toNominal].
func (service *SessionService) ListSessionsForDays(userID uint, fromNominal time.Time, toNominal time.Time, location *time.Location) ([]models.ReadingSession, error) {
	start, _ := NominalDayBounds(fromNominal, location)
	_, end := NominalDayBounds(toNominal, location)
	return service.sessions.ListByUserRange(userID, start, end)
}

func normalizeClientToken(raw string) (string, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", errSessionTokenMalformed
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", errSessionTokenMalformed
	}
	return token, nil
}
