package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/memento-care/memento/internal/constants"
)

// CategoryInfo holds the display metadata for a routine category
type CategoryInfo struct {
	Icon  string
	Color string
	Label string
}

// Categories maps each routine category to its display metadata
var Categories = map[constants.RoutineCategory]CategoryInfo{
	constants.CategoryMedication:  {Icon: "💊", Color: "#E57373", Label: "Medication"},
	constants.CategoryMeal:        {Icon: "🍽️", Color: "#FFB74D", Label: "Meal"},
	constants.CategoryExercise:    {Icon: "🚶", Color: "#81C784", Label: "Exercise"},
	constants.CategoryAppointment: {Icon: "📅", Color: "#64B5F6", Label: "Appointment"},
	constants.CategoryHygiene:     {Icon: "🚿", Color: "#9575CD", Label: "Hygiene"},
	constants.CategorySocial:      {Icon: "👥", Color: "#F06292", Label: "Social"},
	constants.CategoryOther:       {Icon: "📌", Color: "#90A4AE", Label: "Other"},
}

// ParseCategory validates a category string against the closed enumeration.
// Unknown categories are rejected at the boundary rather than defaulted.
func ParseCategory(s string) (constants.RoutineCategory, error) {
	c := constants.RoutineCategory(s)
	if _, ok := Categories[c]; !ok {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

type Routine struct {
	ID             string                    `json:"id"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description,omitempty"`
	Category       constants.RoutineCategory `json:"category"`
	Time           string                    `json:"time"` // HH:MM format
	Days           []time.Weekday            `json:"days"` // 0=Sunday .. 6=Saturday
	Enabled        bool                      `json:"enabled"`
	ReminderHandle string                    `json:"reminder_handle,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

func (r *Routine) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("routine title cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if _, ok := Categories[r.Category]; !ok {
		return fmt.Errorf("unknown category: %q", r.Category)
	}

	for _, d := range r.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday: %d", d)
		}
	}

	return nil
}

// IsActiveOn reports whether the routine fires on the given weekday. A
// routine enabled with an empty day set never fires.
func (r *Routine) IsActiveOn(weekday time.Weekday) bool {
	if !r.Enabled {
		return false
	}
	for _, d := range r.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ShouldRemind reports whether a reminder should be scheduled for the routine.
func (r *Routine) ShouldRemind() bool {
	return r.Enabled && len(r.Days) > 0
}

// StatusAt classifies the routine's time relative to the given minutes since
// midnight: more than 30 min gone is past, up to 30 min gone is now, within
// the next 30 min is soon, anything later is upcoming.
func (r *Routine) StatusAt(nowMinutes int) constants.TimeStatus {
	t, err := time.Parse(constants.TimeFormat, r.Time)
	if err != nil {
		return constants.StatusUpcoming
	}
	diff := t.Hour()*60 + t.Minute() - nowMinutes

	switch {
	case diff < -constants.TimeStatusWindowMin:
		return constants.StatusPast
	case diff < 0:
		return constants.StatusNow
	case diff < constants.TimeStatusWindowMin:
		return constants.StatusSoon
	default:
		return constants.StatusUpcoming
	}
}

// CategoryInfo returns the display metadata for the routine's category.
func (r *Routine) CategoryInfo() CategoryInfo {
	if info, ok := Categories[r.Category]; ok {
		return info
	}
	return Categories[constants.CategoryOther]
}

// FormatDays returns a human-readable list of the routine's active weekdays.
func (r *Routine) FormatDays() string {
	if len(r.Days) == 7 {
		return "every day"
	}

	sorted := make([]time.Weekday, len(r.Days))
	copy(sorted, r.Days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := ""
	for i, d := range sorted {
		if i > 0 {
			out += ","
		}
		out += constants.DayNames[d]
	}
	return out
}

// TodaysRoutines filters the given routines to those active on today's
// weekday, sorted ascending by time of day. HH:MM is fixed-width so the
// lexicographic compare is chronological.
func TodaysRoutines(routines []Routine, today time.Time) []Routine {
	var active []Routine
	for _, r := range routines {
		if r.IsActiveOn(today.Weekday()) {
			active = append(active, r)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Time < active[j].Time
	})

	return active
}
