// Package routines implements the routine store: CRUD over recurring daily
// routines and best-effort reminder scheduling through the notification
// dispatcher.
package routines

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/logger"
	"github.com/memento-care/memento/internal/models"
	"github.com/memento-care/memento/internal/notify"
	"github.com/memento-care/memento/internal/storage"
)

type Service struct {
	store      storage.Provider
	dispatcher notify.Dispatcher

	now func() time.Time
}

func NewService(store storage.Provider, dispatcher notify.Dispatcher) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// NewRoutine carries the caller-supplied fields for Add; id, creation time
// and reminder handle are assigned by the service.
type NewRoutine struct {
	Title       string
	Description string
	Category    constants.RoutineCategory
	Time        string
	Days        []time.Weekday
	Enabled     bool
}

// Update carries a partial routine mutation; nil fields are left unchanged.
type Update struct {
	Title       *string
	Description *string
	Category    *constants.RoutineCategory
	Time        *string
	Days        *[]time.Weekday
	Enabled     *bool
}

// Add validates and persists a new routine. When the routine is enabled with
// at least one active day, a recurring reminder is scheduled; scheduling
// failures are logged and never block the routine itself.
func (s *Service) Add(n NewRoutine) (models.Routine, error) {
	routine := models.Routine{
		ID:          uuid.New().String(),
		Title:       n.Title,
		Description: n.Description,
		Category:    n.Category,
		Time:        n.Time,
		Days:        n.Days,
		Enabled:     n.Enabled,
		CreatedAt:   s.now(),
	}

	if err := routine.Validate(); err != nil {
		return models.Routine{}, err
	}

	if routine.ShouldRemind() {
		handle, err := s.scheduleReminder(routine)
		if err != nil {
			logger.Warn("Failed to schedule reminder", "routine", routine.Title, "error", err)
		} else {
			routine.ReminderHandle = handle
		}
	}

	if err := s.store.AddRoutine(routine); err != nil {
		return models.Routine{}, fmt.Errorf("failed to add routine: %w", err)
	}

	return routine, nil
}

// UpdateFields merges the given fields into the routine, cancels its previous
// reminder and schedules a replacement under the same policy as Add. An
// unknown id is a silent no-op.
func (s *Service) UpdateFields(id string, u Update) error {
	routine, err := s.store.GetRoutine(id)
	if err != nil {
		logger.Debug("Update on unknown routine ignored", "id", id)
		return nil
	}

	if u.Title != nil {
		routine.Title = *u.Title
	}
	if u.Description != nil {
		routine.Description = *u.Description
	}
	if u.Category != nil {
		routine.Category = *u.Category
	}
	if u.Time != nil {
		routine.Time = *u.Time
	}
	if u.Days != nil {
		routine.Days = *u.Days
	}
	if u.Enabled != nil {
		routine.Enabled = *u.Enabled
	}

	if err := routine.Validate(); err != nil {
		return err
	}

	s.cancelReminder(routine.ReminderHandle)
	routine.ReminderHandle = ""

	if routine.ShouldRemind() {
		handle, err := s.scheduleReminder(routine)
		if err != nil {
			logger.Warn("Failed to schedule reminder", "routine", routine.Title, "error", err)
		} else {
			routine.ReminderHandle = handle
		}
	}

	if err := s.store.UpdateRoutine(routine); err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}

	return nil
}

// Remove cancels the routine's reminder and deletes it. Completion records
// are left behind; they are harmless once the routine is gone. An unknown id
// is a silent no-op.
func (s *Service) Remove(id string) error {
	routine, err := s.store.GetRoutine(id)
	if err != nil {
		logger.Debug("Remove on unknown routine ignored", "id", id)
		return nil
	}

	s.cancelReminder(routine.ReminderHandle)

	if err := s.store.DeleteRoutine(id); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	return nil
}

// ToggleEnabled flips the routine's enabled flag. An unknown id is a silent
// no-op.
func (s *Service) ToggleEnabled(id string) error {
	routine, err := s.store.GetRoutine(id)
	if err != nil {
		logger.Debug("Toggle on unknown routine ignored", "id", id)
		return nil
	}

	enabled := !routine.Enabled
	return s.UpdateFields(id, Update{Enabled: &enabled})
}

// Get returns a single routine by id.
func (s *Service) Get(id string) (models.Routine, error) {
	return s.store.GetRoutine(id)
}

// List returns all routines ordered by creation time.
func (s *Service) List() ([]models.Routine, error) {
	routines, err := s.store.GetAllRoutines()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(routines, func(i, j int) bool {
		return routines[i].CreatedAt.Before(routines[j].CreatedAt)
	})

	return routines, nil
}

// Today returns the routines active on today's weekday, ordered by time of
// day.
func (s *Service) Today() ([]models.Routine, error) {
	routines, err := s.store.GetAllRoutines()
	if err != nil {
		return nil, err
	}

	return models.TodaysRoutines(routines, s.now()), nil
}

// RestoreReminders re-registers reminders for every routine that should have
// one. The in-process dispatcher loses its registrations on restart, so the
// watch daemon calls this at startup; persisted handles are replaced.
func (s *Service) RestoreReminders() error {
	routines, err := s.store.GetAllRoutines()
	if err != nil {
		return err
	}

	for _, routine := range routines {
		if !routine.ShouldRemind() {
			continue
		}

		handle, err := s.scheduleReminder(routine)
		if err != nil {
			logger.Warn("Failed to restore reminder", "routine", routine.Title, "error", err)
			continue
		}

		routine.ReminderHandle = handle
		if err := s.store.UpdateRoutine(routine); err != nil {
			logger.Warn("Failed to persist restored reminder handle", "routine", routine.Title, "error", err)
		}
	}

	return nil
}

func (s *Service) scheduleReminder(routine models.Routine) (string, error) {
	body := routine.Description
	if body == "" {
		body = "Time for your routine!"
	}

	return s.dispatcher.ScheduleRecurring(routine.Time, notify.Payload{
		Title:     fmt.Sprintf("%s %s", routine.CategoryInfo().Icon, routine.Title),
		Body:      body,
		RoutineID: routine.ID,
	})
}

func (s *Service) cancelReminder(handle string) {
	if handle == "" {
		return
	}
	if err := s.dispatcher.Cancel(handle); err != nil {
		logger.Warn("Failed to cancel reminder", "handle", handle, "error", err)
	}
}
