package utils

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	now := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "2026-03-07" {
		t.Errorf("Today() = %q, want 2026-03-07", got)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "08:30", want: 510},
		{name: "end of day", input: "23:59", want: 1439},
		{name: "missing minutes", input: "08", wantErr: true},
		{name: "12-hour format", input: "8:30 AM", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	now := time.Date(2026, 3, 7, 14, 45, 30, 0, time.UTC)
	if got := MinutesSinceMidnight(now); got != 885 {
		t.Errorf("MinutesSinceMidnight() = %d, want 885", got)
	}
}

func TestDateBefore(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	if got := DateBefore(now, 7); got != "2026-02-28" {
		t.Errorf("DateBefore(7) = %q, want 2026-02-28", got)
	}
	if got := DateBefore(now, 30); got != "2026-02-05" {
		t.Errorf("DateBefore(30) = %q, want 2026-02-05", got)
	}
	if got := DateBefore(now, 0); got != "2026-03-07" {
		t.Errorf("DateBefore(0) = %q, want 2026-03-07", got)
	}
}
