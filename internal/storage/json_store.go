package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/memento-care/memento/internal/logger"
	"github.com/memento-care/memento/internal/models"
)

type jsonFile struct {
	Version     int                       `json:"version"`
	Routines    map[string]models.Routine `json:"routines"`
	Completions []models.Completion       `json:"completions"`
	Safety      *models.SafetyProfile     `json:"safety,omitempty"`
}

// JSONStore persists the whole engine state as a single JSON document. It is
// the plain key-value persistence backend; a missing or malformed file is
// treated as an empty store rather than an error.
type JSONStore struct {
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file is an empty store, not a failure
			s.store = emptyStore()
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Malformed state must not crash the app; start empty and let the
		// next save replace the file
		logger.Warn("Storage file is malformed, starting with empty state", "path", s.path, "error", err)
		s.store = emptyStore()
		return nil
	}

	if s.store.Routines == nil {
		s.store.Routines = make(map[string]models.Routine)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func emptyStore() *jsonFile {
	return &jsonFile{
		Version:  1,
		Routines: make(map[string]models.Routine),
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddRoutine(routine models.Routine) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Routines[routine.ID] = routine
	return s.save()
}

func (s *JSONStore) GetRoutine(id string) (models.Routine, error) {
	if s.store == nil {
		return models.Routine{}, fmt.Errorf("storage not loaded")
	}

	routine, ok := s.store.Routines[id]
	if !ok {
		return models.Routine{}, fmt.Errorf("routine not found: %s", id)
	}

	return routine, nil
}

func (s *JSONStore) GetAllRoutines() ([]models.Routine, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	routines := make([]models.Routine, 0, len(s.store.Routines))
	for _, routine := range s.store.Routines {
		routines = append(routines, routine)
	}

	return routines, nil
}

func (s *JSONStore) UpdateRoutine(routine models.Routine) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Routines[routine.ID]; !ok {
		return fmt.Errorf("routine not found: %s", routine.ID)
	}

	s.store.Routines[routine.ID] = routine
	return s.save()
}

func (s *JSONStore) DeleteRoutine(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Routines[id]; !ok {
		return fmt.Errorf("routine not found: %s", id)
	}

	delete(s.store.Routines, id)
	return s.save()
}

func (s *JSONStore) AddCompletion(completion models.Completion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// At most one record per (routine, date)
	for _, c := range s.store.Completions {
		if c.RoutineID == completion.RoutineID && c.Date == completion.Date {
			return nil
		}
	}

	s.store.Completions = append(s.store.Completions, completion)
	return s.save()
}

func (s *JSONStore) GetCompletion(routineID, date string) (models.Completion, error) {
	if s.store == nil {
		return models.Completion{}, fmt.Errorf("storage not loaded")
	}

	for _, c := range s.store.Completions {
		if c.RoutineID == routineID && c.Date == date {
			return c, nil
		}
	}

	return models.Completion{}, fmt.Errorf("completion not found: %s on %s", routineID, date)
}

func (s *JSONStore) GetAllCompletions() ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	completions := make([]models.Completion, len(s.store.Completions))
	copy(completions, s.store.Completions)
	return completions, nil
}

func (s *JSONStore) GetCompletionsSince(date string) ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var completions []models.Completion
	for _, c := range s.store.Completions {
		// YYYY-MM-DD compares chronologically as a string
		if c.Date >= date {
			completions = append(completions, c)
		}
	}

	return completions, nil
}

func (s *JSONStore) PruneCompletionsBefore(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	kept := make([]models.Completion, 0, len(s.store.Completions))
	for _, c := range s.store.Completions {
		if c.Date >= date {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(s.store.Completions) {
		return nil
	}

	s.store.Completions = kept
	return s.save()
}

func (s *JSONStore) GetSafetyProfile() (models.SafetyProfile, error) {
	if s.store == nil {
		return models.SafetyProfile{}, fmt.Errorf("storage not loaded")
	}

	if s.store.Safety == nil {
		return models.DefaultSafetyProfile(""), nil
	}

	return *s.store.Safety, nil
}

func (s *JSONStore) SaveSafetyProfile(profile models.SafetyProfile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Safety = &profile
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
