package postgres

import (
	"database/sql"
	"fmt"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/models"
)

func (s *Store) AddRoutine(routine models.Routine) error {
	var handle sql.NullString
	if routine.ReminderHandle != "" {
		handle = sql.NullString{String: routine.ReminderHandle, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO routines (id, title, description, category, time, days, enabled, reminder_handle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		routine.ID, routine.Title, routine.Description, string(routine.Category),
		routine.Time, models.EncodeWeekdays(routine.Days), routine.Enabled,
		handle, routine.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add routine: %w", err)
	}
	return nil
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, category, time, days, enabled, reminder_handle, created_at
		FROM routines WHERE id = $1`, id)
	return scanRoutine(row)
}

func (s *Store) GetAllRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, category, time, days, enabled, reminder_handle, created_at
		FROM routines ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}

	return routines, rows.Err()
}

func (s *Store) UpdateRoutine(routine models.Routine) error {
	var handle sql.NullString
	if routine.ReminderHandle != "" {
		handle = sql.NullString{String: routine.ReminderHandle, Valid: true}
	}

	res, err := s.db.Exec(`
		UPDATE routines
		SET title = $1, description = $2, category = $3, time = $4, days = $5, enabled = $6, reminder_handle = $7
		WHERE id = $8`,
		routine.Title, routine.Description, string(routine.Category), routine.Time,
		models.EncodeWeekdays(routine.Days), routine.Enabled, handle, routine.ID)
	if err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("routine not found: %s", routine.ID)
	}
	return nil
}

func (s *Store) DeleteRoutine(id string) error {
	res, err := s.db.Exec("DELETE FROM routines WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("routine not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoutine(row rowScanner) (models.Routine, error) {
	var r models.Routine
	var category, days string
	var handle sql.NullString

	err := row.Scan(&r.ID, &r.Title, &r.Description, &category, &r.Time, &days, &r.Enabled, &handle, &r.CreatedAt)
	if err != nil {
		return models.Routine{}, err
	}

	r.Category = constants.RoutineCategory(category)
	if handle.Valid {
		r.ReminderHandle = handle.String
	}

	r.Days, err = models.DecodeWeekdays(days)
	if err != nil {
		return models.Routine{}, fmt.Errorf("failed to parse days for routine %s: %w", r.ID, err)
	}

	return r, nil
}
