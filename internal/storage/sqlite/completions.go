package sqlite

import (
	"fmt"
	"time"

	"github.com/memento-care/memento/internal/models"
)

func (s *Store) AddCompletion(completion models.Completion) error {
	// INSERT OR IGNORE keeps completion idempotent per (routine, day)
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO completions (routine_id, completed_at, day)
		VALUES (?, ?, ?)`,
		completion.RoutineID, completion.CompletedAt.Format(time.RFC3339), completion.Date)
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *Store) GetCompletion(routineID, date string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT routine_id, completed_at, day
		FROM completions WHERE routine_id = ? AND day = ?`, routineID, date)

	var c models.Completion
	var completedAt string
	if err := row.Scan(&c.RoutineID, &completedAt, &c.Date); err != nil {
		return models.Completion{}, err
	}

	var err error
	c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}

	return c, nil
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT routine_id, completed_at, day FROM completions ORDER BY day`)
}

func (s *Store) GetCompletionsSince(date string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT routine_id, completed_at, day FROM completions WHERE day >= ? ORDER BY day`, date)
}

func (s *Store) PruneCompletionsBefore(date string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE day < ?", date)
	if err != nil {
		return fmt.Errorf("failed to prune completions: %w", err)
	}
	return nil
}

func (s *Store) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var completedAt string
		if err := rows.Scan(&c.RoutineID, &completedAt, &c.Date); err != nil {
			return nil, err
		}

		c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completed_at for routine %s: %w", c.RoutineID, err)
		}

		completions = append(completions, c)
	}

	return completions, rows.Err()
}
