package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/memento-care/memento/internal/models"
)

func (s *Store) GetSafetyProfile() (models.SafetyProfile, error) {
	row := s.db.QueryRow(`
		SELECT full_name, phone_number, emergency_contact,
		       home_latitude, home_longitude, home_address, home_name,
		       monitoring_enabled, reminder_interval_min,
		       last_latitude, last_longitude, last_accuracy, last_timestamp
		FROM safety_profile WHERE id = 1`)

	var p models.SafetyProfile
	var phone, emergency, homeAddr, homeName, lastTS sql.NullString
	var homeLat, homeLon, lastLat, lastLon, lastAcc sql.NullFloat64

	err := row.Scan(&p.FullName, &phone, &emergency,
		&homeLat, &homeLon, &homeAddr, &homeName,
		&p.MonitoringEnabled, &p.ReminderIntervalMinutes,
		&lastLat, &lastLon, &lastAcc, &lastTS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// First use: no profile row yet
			return models.DefaultSafetyProfile(""), nil
		}
		return models.SafetyProfile{}, err
	}

	p.PhoneNumber = phone.String
	p.EmergencyContact = emergency.String

	if homeLat.Valid && homeLon.Valid {
		p.HomeLocation = &models.HomeLocation{
			Latitude:  homeLat.Float64,
			Longitude: homeLon.Float64,
			Address:   homeAddr.String,
			Name:      homeName.String,
		}
	}

	if lastLat.Valid && lastLon.Valid && lastTS.Valid {
		ts, err := time.Parse(time.RFC3339, lastTS.String)
		if err != nil {
			return models.SafetyProfile{}, fmt.Errorf("failed to parse last_timestamp: %w", err)
		}
		p.LastKnownLocation = &models.LocationFix{
			Latitude:  lastLat.Float64,
			Longitude: lastLon.Float64,
			Accuracy:  lastAcc.Float64,
			Timestamp: ts,
		}
	}

	return p, nil
}

func (s *Store) SaveSafetyProfile(p models.SafetyProfile) error {
	var phone, emergency, homeAddr, homeName, lastTS sql.NullString
	var homeLat, homeLon, lastLat, lastLon, lastAcc sql.NullFloat64

	if p.PhoneNumber != "" {
		phone = sql.NullString{String: p.PhoneNumber, Valid: true}
	}
	if p.EmergencyContact != "" {
		emergency = sql.NullString{String: p.EmergencyContact, Valid: true}
	}
	if p.HomeLocation != nil {
		homeLat = sql.NullFloat64{Float64: p.HomeLocation.Latitude, Valid: true}
		homeLon = sql.NullFloat64{Float64: p.HomeLocation.Longitude, Valid: true}
		homeAddr = sql.NullString{String: p.HomeLocation.Address, Valid: true}
		homeName = sql.NullString{String: p.HomeLocation.Name, Valid: true}
	}
	if p.LastKnownLocation != nil {
		lastLat = sql.NullFloat64{Float64: p.LastKnownLocation.Latitude, Valid: true}
		lastLon = sql.NullFloat64{Float64: p.LastKnownLocation.Longitude, Valid: true}
		lastAcc = sql.NullFloat64{Float64: p.LastKnownLocation.Accuracy, Valid: true}
		lastTS = sql.NullString{String: p.LastKnownLocation.Timestamp.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO safety_profile (id, full_name, phone_number, emergency_contact,
			home_latitude, home_longitude, home_address, home_name,
			monitoring_enabled, reminder_interval_min,
			last_latitude, last_longitude, last_accuracy, last_timestamp)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			phone_number = excluded.phone_number,
			emergency_contact = excluded.emergency_contact,
			home_latitude = excluded.home_latitude,
			home_longitude = excluded.home_longitude,
			home_address = excluded.home_address,
			home_name = excluded.home_name,
			monitoring_enabled = excluded.monitoring_enabled,
			reminder_interval_min = excluded.reminder_interval_min,
			last_latitude = excluded.last_latitude,
			last_longitude = excluded.last_longitude,
			last_accuracy = excluded.last_accuracy,
			last_timestamp = excluded.last_timestamp`,
		p.FullName, phone, emergency,
		homeLat, homeLon, homeAddr, homeName,
		p.MonitoringEnabled, p.ReminderIntervalMinutes,
		lastLat, lastLon, lastAcc, lastTS)
	if err != nil {
		return fmt.Errorf("failed to save safety profile: %w", err)
	}
	return nil
}
