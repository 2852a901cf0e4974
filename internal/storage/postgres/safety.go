package postgres

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
	var phone, emergency, homeAddr, homeName sql.NullString
	var homeLat, homeLon, lastLat, lastLon, lastAcc sql.NullFloat64
	var lastTS sql.NullTime

	err := row.Scan(&p.FullName, &phone, &emergency,
		&homeLat, &homeLon, &homeAddr, &homeName,
		&p.MonitoringEnabled, &p.ReminderIntervalMinutes,
		&lastLat, &lastLon, &lastAcc, &lastTS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		p.LastKnownLocation = &models.LocationFix{
			Latitude:  lastLat.Float64,
			Longitude: lastLon.Float64,
			Accuracy:  lastAcc.Float64,
			Timestamp: lastTS.Time,
		}
	}

	return p, nil
}

func (s *Store) SaveSafetyProfile(p models.SafetyProfile) error {
	var phone, emergency, homeAddr, homeName sql.NullString
	var homeLat, homeLon, lastLat, lastLon, lastAcc sql.NullFloat64
	var lastTS sql.NullTime

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
		lastTS = sql.NullTime{Time: p.LastKnownLocation.Timestamp.UTC().Truncate(time.Microsecond), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO safety_profile (id, full_name, phone_number, emergency_contact,
			home_latitude, home_longitude, home_address, home_name,
			monitoring_enabled, reminder_interval_min,
			last_latitude, last_longitude, last_accuracy, last_timestamp)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone_number = EXCLUDED.phone_number,
			emergency_contact = EXCLUDED.emergency_contact,
			home_latitude = EXCLUDED.home_latitude,
			home_longitude = EXCLUDED.home_longitude,
			home_address = EXCLUDED.home_address,
			home_name = EXCLUDED.home_name,
			monitoring_enabled = EXCLUDED.monitoring_enabled,
			reminder_interval_min = EXCLUDED.reminder_interval_min,
			last_latitude = EXCLUDED.last_latitude,
			last_longitude = EXCLUDED.last_longitude,
			last_accuracy = EXCLUDED.last_accuracy,
			last_timestamp = EXCLUDED.last_timestamp`,
		p.FullName, phone, emergency,
		homeLat, homeLon, homeAddr, homeName,
		p.MonitoringEnabled, p.ReminderIntervalMinutes,
		lastLat, lastLon, lastAcc, lastTS)
	if err != nil {
		return fmt.Errorf("failed to save safety profile: %w", err)
	}
	return nil
}
