package models

import (
	"testing"
	"time"
)

func TestEncodeDecodeWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		days    []time.Weekday
		encoded string
	}{
		{name: "empty", days: nil, encoded: ""},
		{name: "single", days: []time.Weekday{time.Wednesday}, encoded: "3"},
		{name: "several", days: []time.Weekday{time.Sunday, time.Monday, time.Saturday}, encoded: "0,1,6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeWeekdays(tt.days)
			if got != tt.encoded {
				t.Errorf("EncodeWeekdays() = %q, want %q", got, tt.encoded)
			}

			back, err := DecodeWeekdays(got)
			if err != nil {
				t.Fatalf("DecodeWeekdays(%q) failed: %v", got, err)
			}
			if len(back) != len(tt.days) {
				t.Fatalf("round trip changed length: %d -> %d", len(tt.days), len(back))
			}
			for i := range back {
				if back[i] != tt.days[i] {
					t.Errorf("round trip changed day %d: %v -> %v", i, tt.days[i], back[i])
				}
			}
		})
	}
}

func TestDecodeWeekdaysRejectsBadInput(t *testing.T) {
	for _, input := range []string{"7", "-1", "mon", "1,,2", "1,8"} {
		if _, err := DecodeWeekdays(input); err == nil {
			t.Errorf("DecodeWeekdays(%q) should have failed", input)
		}
	}
}

func TestSafetyProfileInterval(t *testing.T) {
	p := SafetyProfile{ReminderIntervalMinutes: 30}
	if got := p.Interval(); got != 30*time.Minute {
		t.Errorf("Interval() = %v, want 30m", got)
	}

	p.ReminderIntervalMinutes = 0
	if got := p.Interval(); got != 15*time.Minute {
		t.Errorf("Interval() with zero = %v, want default 15m", got)
	}
}

func TestSafetyProfileValidate(t *testing.T) {
	p := DefaultSafetyProfile("Ada")
	if err := p.Validate(); err != nil {
		t.Errorf("default profile should validate: %v", err)
	}

	p.HomeLocation = &HomeLocation{Latitude: 95, Longitude: 0}
	if err := p.Validate(); err == nil {
		t.Error("latitude out of range should fail validation")
	}

	p.HomeLocation = &HomeLocation{Latitude: 0, Longitude: -200}
	if err := p.Validate(); err == nil {
		t.Error("longitude out of range should fail validation")
	}
}
