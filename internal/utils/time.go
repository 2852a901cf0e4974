package utils

import (
	"time"

	"github.com/memento-care/memento/internal/constants"
)

// Today returns the given instant's calendar date string (YYYY-MM-DD).
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesSinceMidnight returns the minute-of-day for the given instant.
func MinutesSinceMidnight(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// DateBefore returns the date string (YYYY-MM-DD) that is days before the
// given instant's date.
func DateBefore(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format(constants.DateFormat)
}
