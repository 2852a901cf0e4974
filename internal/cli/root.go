package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/models"
	"github.com/memento-care/memento/internal/notify"
	"github.com/memento-care/memento/internal/routines"
	"github.com/memento-care/memento/internal/safety"
	"github.com/memento-care/memento/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Routines   *routines.Service
	Monitor    *safety.Monitor
	Dispatcher notify.Dispatcher
}

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a single weekday name or number (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers.
// "daily" and "all" expand to every day of the week.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if trimmed == "daily" || trimmed == "all" {
		return []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}, nil
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// FormatStatus renders a time status as the marker shown in list output.
func FormatStatus(status constants.TimeStatus) string {
	switch status {
	case constants.StatusNow:
		return "● now"
	case constants.StatusSoon:
		return "◐ soon"
	case constants.StatusPast:
		return "○ past"
	default:
		return "  upcoming"
	}
}

// RoutineLine renders a routine as a single list row.
func RoutineLine(r models.Routine, completedToday bool) string {
	check := " "
	if completedToday {
		check = "✓"
	}
	state := ""
	if !r.Enabled {
		state = " (disabled)"
	}
	return fmt.Sprintf("[%s] %s %s  %s%s", check, r.Time, r.CategoryInfo().Icon, r.Title, state)
}
