package services

import (
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// NormalizeDay truncates value to midnight UTC of its UTC calendar day.
func NormalizeDay(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open interval [start, start+1d) covering value's UTC day.
func DayRange(value time.Time) (time.Time, time.Time) {
	start := NormalizeDay(value)
	return start, start.AddDate(0, 0, 1)
}

func FormatDay(value time.Time) string {
	return NormalizeDay(value).Format(DayLayout)
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// ParseDayOrToday falls back to today (UTC) when raw is empty or malformed.
func ParseDayOrToday(raw string, now time.Time) time.Time {
	parsed, err := ParseDay(raw)
	if err != nil {
		return NormalizeDay(now)
	}
	return parsed
}

// optionalText trims value and maps blank input to nil.
func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
