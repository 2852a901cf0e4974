package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/logger"
	"github.com/memento-care/memento/internal/utils"
)

type entry struct {
	minutes int // minute of day the reminder fires
	payload Payload
}

// Scheduler is an in-process Dispatcher: recurring reminders are kept in
// memory and fired through a Sender by a minute ticker driven from Run.
// Handles are uuids; the routine store persists them and re-registers
// reminders on daemon start.
type Scheduler struct {
	sender Sender

	mu        sync.Mutex
	entries   map[string]entry
	lastFired map[string]string // handle -> date last fired (YYYY-MM-DD)

	now func() time.Time
}

func NewScheduler(sender Sender) *Scheduler {
	return &Scheduler{
		sender:    sender,
		entries:   make(map[string]entry),
		lastFired: make(map[string]string),
		now:       time.Now,
	}
}

func (s *Scheduler) ScheduleRecurring(timeOfDay string, payload Payload) (string, error) {
	minutes, err := utils.ParseTimeToMinutes(timeOfDay)
	if err != nil {
		return "", fmt.Errorf("invalid reminder time %q: %w", timeOfDay, err)
	}

	handle := uuid.New().String()

	s.mu.Lock()
	s.entries[handle] = entry{minutes: minutes, payload: payload}
	// A time already behind us today counts as fired, so registering at
	// daemon start does not replay the morning's reminders
	if now := s.now(); minutes < utils.MinutesSinceMidnight(now) {
		s.lastFired[handle] = now.Format(constants.DateFormat)
	}
	s.mu.Unlock()

	return handle, nil
}

// Cancel removes a scheduled reminder. Cancelling an unknown or already
// cancelled handle is a no-op.
func (s *Scheduler) Cancel(handle string) error {
	s.mu.Lock()
	delete(s.entries, handle)
	delete(s.lastFired, handle)
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) FireNow(payload Payload) error {
	return s.sender.Send(payload)
}

// Run drives the scheduler until the context is cancelled, checking for due
// reminders once a minute.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.fireDue(now)
		}
	}
}

// fireDue sends every reminder whose time of day has been reached. At most
// one send per reminder per calendar day, so an overlapping or delayed tick
// cannot double-fire, and a tick that lands late (host suspend across the
// fire time) still catches up.
func (s *Scheduler) fireDue(now time.Time) {
	nowMinutes := utils.MinutesSinceMidnight(now)
	today := now.Format(constants.DateFormat)

	s.mu.Lock()
	var due []Payload
	for handle, e := range s.entries {
		if e.minutes <= nowMinutes && s.lastFired[handle] != today {
			s.lastFired[handle] = today
			due = append(due, e.payload)
		}
	}
	s.mu.Unlock()

	for _, payload := range due {
		if err := s.sender.Send(payload); err != nil {
			logger.Warn("Failed to send reminder notification", "title", payload.Title, "error", err)
		}
	}
}

// Pending returns the number of scheduled reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
