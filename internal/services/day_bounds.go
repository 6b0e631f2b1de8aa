package services

import (
	"errors"
	"strings"
	"time"
)

const nominalDateLayout = "2006-01-02"

var (
	ErrInvalidDateString = errors.New("invalid date string")
	ErrTimezoneUnknown   = errors.New("unknown time zone")
)

// IsKnownTimezone reports whether name resolves as an IANA zone.
func IsKnownTimezone(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	_, err := time.LoadLocation(trimmed)
	return err == nil
}

// LocationOrUTC resolves an IANA time zone name. Unknown or empty names
// degrade to UTC instead of failing; the resolver must never crash a request
// over a bad zone string.
func LocationOrUTC(name string) *time.Location {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(trimmed)
	if err != nil {
		return time.UTC
	}
	return location
}

// DayBounds returns the instants [start, end) spanning the local calendar day
// that contains value. The span is the true local day length: 23 or 25 hours
// across a DST transition, 24 hours otherwise.
func DayBounds(value time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 0, 1)
}

// TodayBounds is DayBounds for the local day containing now.
func TodayBounds(now time.Time, location *time.Location) (time.Time, time.Time) {
	return DayBounds(now, location)
}

// YesterdayBounds returns the bounds of the local calendar day before the one
// containing now.
func YesterdayBounds(now time.Time, location *time.Location) (time.Time, time.Time) {
	start, _ := DayBounds(now, location)
	return DayBounds(start.AddDate(0, 0, -1), location)
}

// LocalDateString formats the instant as the YYYY-MM-DD calendar date it falls
// on in the given zone.
func LocalDateString(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(nominalDateLayout)
}

// NominalDate parses a YYYY-MM-DD string into the UTC-midnight instant that
// labels the day in storage.
func NominalDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(nominalDateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateString
	}
	return parsed, nil
}

// NominalDateOf labels the local calendar day containing value with a
// UTC-midnight instant.
func NominalDateOf(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NominalDayBounds maps a nominal date back onto the UTC instant range of the
// corresponding local calendar day in the given zone.
func NominalDayBounds(nominal time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	normalized := nominal.UTC()
	start := time.Date(normalized.Year(), normalized.Month(), normalized.Day(), 0, 0, 0, 0, location)
	return start, start.AddDate(0, 0, 1)
}

// NominalDaysBetween counts whole calendar days from a to b. Both arguments
// must be nominal dates; on the nominal axis every day is exactly 24 hours, so
// the count never picks up DST drift.
func NominalDaysBetween(a time.Time, b time.Time) int {
	return int(normalizeNominal(b).Sub(normalizeNominal(a)) / (24 * time.Hour))
}

// SameNominalDate reports whether two nominal dates label the same day.
func SameNominalDate(a time.Time, b time.Time) bool {
	return normalizeNominal(a).Equal(normalizeNominal(b))
}

// PreviousNominalDate returns the nominal date one day earlier.
func PreviousNominalDate(nominal time.Time) time.Time {
	return normalizeNominal(nominal).AddDate(0, 0, -1)
}

func normalizeNominal(value time.Time) time.Time {
	normalized := value.UTC()
	return time.Date(normalized.Year(), normalized.Month(), normalized.Day(), 0, 0, 0, 0, time.UTC)
}

func nominalKey(value time.Time) string {
	return normalizeNominal(value).Format(nominalDateLayout)
}
