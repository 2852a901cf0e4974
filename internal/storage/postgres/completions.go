package postgres

import (
	"fmt"

	"github.com/memento-care/memento/internal/models"
)

func (s *Store) AddCompletion(completion models.Completion) error {
	// ON CONFLICT DO NOTHING keeps completion idempotent per (routine, day)
	_, err := s.db.Exec(`
		INSERT INTO completions (routine_id, completed_at, day)
		VALUES ($1, $2, $3)
		ON CONFLICT (routine_id, day) DO NOTHING`,
		completion.RoutineID, completion.CompletedAt, completion.Date)
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *Store) GetCompletion(routineID, date string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT routine_id, completed_at, day
		FROM completions WHERE routine_id = $1 AND day = $2`, routineID, date)

	var c models.Completion
	if err := row.Scan(&c.RoutineID, &c.CompletedAt, &c.Date); err != nil {
		return models.Completion{}, err
	}

	return c, nil
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT routine_id, completed_at, day FROM completions ORDER BY day`)
}

func (s *Store) GetCompletionsSince(date string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT routine_id, completed_at, day FROM completions WHERE day >= $1 ORDER BY day`, date)
}

func (s *Store) PruneCompletionsBefore(date string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE day < $1", date)
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
		if err := rows.Scan(&c.RoutineID, &c.CompletedAt, &c.Date); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}
