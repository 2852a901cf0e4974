package storage

import "github.com/memento-care/memento/internal/models"

// Provider is the persistence boundary for routines, completions and the
// safety profile. Implementations: JSON file, SQLite, PostgreSQL.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetAllRoutines() ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	DeleteRoutine(id string) error

	// Completions
	AddCompletion(models.Completion) error
	// GetCompletion returns the completion for the given routine and date, or
	// an error if none exists.
	GetCompletion(routineID, date string) (models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	// GetCompletionsSince returns completions with date >= the given date
	// (YYYY-MM-DD).
	GetCompletionsSince(date string) ([]models.Completion, error)
	// PruneCompletionsBefore removes completions with date < the given date.
	// Retention is a storage optimization, not a correctness requirement.
	PruneCompletionsBefore(date string) error

	// Safety profile
	GetSafetyProfile() (models.SafetyProfile, error)
	SaveSafetyProfile(models.SafetyProfile) error

	// Utils
	GetConfigPath() string
}
