package models

import (
	"fmt"
	"time"

	"github.com/memento-care/memento/internal/constants"
)

// HomeLocation is the geographic point designated as the patient's residence.
type HomeLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Name      string  `json:"name"`
}

// LocationFix is a single device position report.
type LocationFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// SafetyProfile holds the per-patient safety monitoring configuration. Home
// location and last known location are nil until set.
type SafetyProfile struct {
	FullName                string        `json:"full_name"`
	PhoneNumber             string        `json:"phone_number,omitempty"`
	EmergencyContact        string        `json:"emergency_contact,omitempty"`
	HomeLocation            *HomeLocation `json:"home_location,omitempty"`
	MonitoringEnabled       bool          `json:"monitoring_enabled"`
	ReminderIntervalMinutes int           `json:"reminder_interval_minutes"`
	LastKnownLocation       *LocationFix  `json:"last_known_location,omitempty"`
}

// DefaultSafetyProfile returns a fresh profile with monitoring off and the
// default reminder interval.
func DefaultSafetyProfile(fullName string) SafetyProfile {
	return SafetyProfile{
		FullName:                fullName,
		MonitoringEnabled:       false,
		ReminderIntervalMinutes: constants.DefaultReminderIntervalMin,
	}
}

// Interval returns the reminder interval as a duration, falling back to the
// default when unset or invalid.
func (p *SafetyProfile) Interval() time.Duration {
	min := p.ReminderIntervalMinutes
	if min <= 0 {
		min = constants.DefaultReminderIntervalMin
	}
	return time.Duration(min) * time.Minute
}

func (p *SafetyProfile) Validate() error {
	if p.ReminderIntervalMinutes < 0 {
		return fmt.Errorf("reminder interval cannot be negative")
	}
	if p.HomeLocation != nil {
		if p.HomeLocation.Latitude < -90 || p.HomeLocation.Latitude > 90 {
			return fmt.Errorf("home latitude out of range: %f", p.HomeLocation.Latitude)
		}
		if p.HomeLocation.Longitude < -180 || p.HomeLocation.Longitude > 180 {
			return fmt.Errorf("home longitude out of range: %f", p.HomeLocation.Longitude)
		}
	}
	return nil
}
