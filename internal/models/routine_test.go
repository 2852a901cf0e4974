package models

import (
	"testing"
	"time"

	"github.com/memento-care/memento/internal/constants"
)

func TestRoutineValidate(t *testing.T) {
	tests := []struct {
		name    string
		routine Routine
		wantErr bool
	}{
		{
			name: "valid routine",
			routine: Routine{
				Title:    "Morning pills",
				Category: constants.CategoryMedication,
				Time:     "08:00",
				Days:     []time.Weekday{time.Monday, time.Wednesday},
			},
			wantErr: false,
		},
		{
			name: "empty title",
			routine: Routine{
				Category: constants.CategoryMeal,
				Time:     "08:00",
			},
			wantErr: true,
		},
		{
			name: "bad time format",
			routine: Routine{
				Title:    "Lunch",
				Category: constants.CategoryMeal,
				Time:     "8am",
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			routine: Routine{
				Title:    "Lunch",
				Category: "snack",
				Time:     "12:00",
			},
			wantErr: true,
		},
		{
			name: "empty days is allowed",
			routine: Routine{
				Title:    "Walk",
				Category: constants.CategoryExercise,
				Time:     "17:30",
				Days:     nil,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.routine.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsActiveOn(t *testing.T) {
	routine := Routine{
		Title:    "Morning pills",
		Category: constants.CategoryMedication,
		Time:     "08:00",
		Days:     []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Enabled:  true,
	}

	tests := []struct {
		name    string
		weekday time.Weekday
		enabled bool
		want    bool
	}{
		{name: "active weekday", weekday: time.Monday, enabled: true, want: true},
		{name: "another active weekday", weekday: time.Friday, enabled: true, want: true},
		{name: "inactive weekday", weekday: time.Tuesday, enabled: true, want: false},
		{name: "disabled routine never active", weekday: time.Monday, enabled: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := routine
			r.Enabled = tt.enabled
			if got := r.IsActiveOn(tt.weekday); got != tt.want {
				t.Errorf("IsActiveOn(%v) = %v, want %v", tt.weekday, got, tt.want)
			}
		})
	}
}

func TestIsActiveOnEmptyDays(t *testing.T) {
	r := Routine{Title: "Walk", Category: constants.CategoryExercise, Time: "17:00", Enabled: true}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if r.IsActiveOn(wd) {
			t.Errorf("routine with no days should never be active, but fired on %v", wd)
		}
	}
}

func TestShouldRemind(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		days    []time.Weekday
		want    bool
	}{
		{name: "enabled with days", enabled: true, days: []time.Weekday{time.Monday}, want: true},
		{name: "enabled without days", enabled: true, days: nil, want: false},
		{name: "disabled with days", enabled: false, days: []time.Weekday{time.Monday}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Routine{Enabled: tt.enabled, Days: tt.days}
			if got := r.ShouldRemind(); got != tt.want {
				t.Errorf("ShouldRemind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusAt(t *testing.T) {
	routine := Routine{Title: "Lunch", Category: constants.CategoryMeal, Time: "10:00"}

	tests := []struct {
		name       string
		nowMinutes int // minutes since midnight
		want       constants.TimeStatus
	}{
		{name: "exactly 30 min before is upcoming", nowMinutes: 9*60 + 30, want: constants.StatusUpcoming},
		{name: "29 min before is soon", nowMinutes: 9*60 + 31, want: constants.StatusSoon},
		{name: "at the minute is soon", nowMinutes: 10 * 60, want: constants.StatusSoon},
		{name: "1 min after is now", nowMinutes: 10*60 + 1, want: constants.StatusNow},
		{name: "30 min after is now", nowMinutes: 10*60 + 30, want: constants.StatusNow},
		{name: "31 min after is past", nowMinutes: 10*60 + 31, want: constants.StatusPast},
		{name: "well before is upcoming", nowMinutes: 6 * 60, want: constants.StatusUpcoming},
		{name: "well after is past", nowMinutes: 20 * 60, want: constants.StatusPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routine.StatusAt(tt.nowMinutes); got != tt.want {
				t.Errorf("StatusAt(%d) = %v, want %v", tt.nowMinutes, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for category := range Categories {
		if _, err := ParseCategory(string(category)); err != nil {
			t.Errorf("ParseCategory(%q) unexpectedly failed: %v", category, err)
		}
	}

	if _, err := ParseCategory("snack"); err == nil {
		t.Error("ParseCategory should reject unknown categories")
	}
	if _, err := ParseCategory(""); err == nil {
		t.Error("ParseCategory should reject the empty string")
	}
}

func TestCategoryInfoFallback(t *testing.T) {
	r := Routine{Category: "bogus"}
	if got := r.CategoryInfo(); got != Categories[constants.CategoryOther] {
		t.Errorf("CategoryInfo() for unknown category = %+v, want 'other' metadata", got)
	}
}

func TestTodaysRoutines(t *testing.T) {
	// 2026-08-24 is a Monday
	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	routines := []Routine{
		{ID: "b", Title: "Lunch", Category: constants.CategoryMeal, Time: "12:00", Days: []time.Weekday{time.Monday}, Enabled: true},
		{ID: "a", Title: "Pills", Category: constants.CategoryMedication, Time: "08:00", Days: []time.Weekday{time.Monday}, Enabled: true},
		{ID: "c", Title: "Walk", Category: constants.CategoryExercise, Time: "17:00", Days: []time.Weekday{time.Tuesday}, Enabled: true},
		{ID: "d", Title: "Call", Category: constants.CategorySocial, Time: "10:00", Days: []time.Weekday{time.Monday}, Enabled: false},
	}

	got := TodaysRoutines(routines, monday)

	if len(got) != 2 {
		t.Fatalf("TodaysRoutines() returned %d routines, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("TodaysRoutines() order = [%s, %s], want [a, b]", got[0].ID, got[1].ID)
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		name string
		days []time.Weekday
		want string
	}{
		{
			name: "every day",
			days: []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
			want: "every day",
		},
		{
			name: "sorted subset",
			days: []time.Weekday{time.Friday, time.Monday, time.Wednesday},
			want: "Mon,Wed,Fri",
		},
		{
			name: "single day",
			days: []time.Weekday{time.Sunday},
			want: "Sun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Routine{Days: tt.days}
			if got := r.FormatDays(); got != tt.want {
				t.Errorf("FormatDays() = %q, want %q", got, tt.want)
			}
		})
	}
}
