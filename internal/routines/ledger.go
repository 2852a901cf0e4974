package routines

import (
	"fmt"
	"math"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/models"
	"github.com/memento-care/memento/internal/utils"
)

// Complete records that the routine was done today. Completing an
// already-completed routine on the same date is a no-op.
func (s *Service) Complete(routineID string) error {
	now := s.now()
	today := utils.Today(now)

	if _, err := s.store.GetCompletion(routineID, today); err == nil {
		return nil
	}

	completion := models.Completion{
		RoutineID:   routineID,
		CompletedAt: now,
		Date:        today,
	}

	if err := s.store.AddCompletion(completion); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	return nil
}

// IsCompletedToday reports whether the routine was marked done today.
func (s *Service) IsCompletedToday(routineID string) bool {
	_, err := s.store.GetCompletion(routineID, utils.Today(s.now()))
	return err == nil
}

// CompletionRate returns the percentage of possible completions achieved over
// the last windowDays, integer-rounded into [0, 100]. The denominator is
// enabled-routine count times window length regardless of each routine's
// weekday pattern, so routines not scheduled every day drag the rate down.
// That coarseness matches the caregiver dashboard's expectations; do not
// correct it here without changing the dashboard too.
func (s *Service) CompletionRate(windowDays int) (int, error) {
	if windowDays <= 0 {
		return 0, fmt.Errorf("window must be positive: %d", windowDays)
	}

	routines, err := s.store.GetAllRoutines()
	if err != nil {
		return 0, err
	}

	enabled := 0
	for _, r := range routines {
		if r.Enabled {
			enabled++
		}
	}

	totalPossible := enabled * windowDays
	if totalPossible == 0 {
		return 0, nil
	}

	completions, err := s.store.GetCompletionsSince(utils.DateBefore(s.now(), windowDays))
	if err != nil {
		return 0, err
	}

	rate := int(math.Round(float64(len(completions)) / float64(totalPossible) * 100))
	if rate > 100 {
		rate = 100
	}

	return rate, nil
}

// PruneOldCompletions drops completion records older than the retention
// window. Called on load; purely a storage optimization.
func (s *Service) PruneOldCompletions() error {
	return s.store.PruneCompletionsBefore(utils.DateBefore(s.now(), constants.CompletionRetentionDays))
}
