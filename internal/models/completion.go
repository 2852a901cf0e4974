package models

import "time"

// Completion records that a routine was marked done on a calendar date.
// Records are append-only; (RoutineID, Date) is the dedup key.
type Completion struct {
	RoutineID   string    `json:"routine_id"`
	CompletedAt time.Time `json:"completed_at"`
	Date        string    `json:"date"` // YYYY-MM-DD format
}
