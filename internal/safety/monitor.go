// Package safety implements home-distance monitoring: a polling loop that
// periodically fetches the device position, computes the distance from the
// configured home location and dispatches reminder notifications when the
// patient is away.
package safety

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/memento-care/memento/internal/constants"
	apperrors "github.com/memento-care/memento/internal/errors"
	"github.com/memento-care/memento/internal/geo"
	"github.com/memento-care/memento/internal/location"
	"github.com/memento-care/memento/internal/logger"
	"github.com/memento-care/memento/internal/models"
	"github.com/memento-care/memento/internal/notify"
	"github.com/memento-care/memento/internal/storage"
)

// Monitor is the safety monitoring state machine. It is Idle until Start
// succeeds and Monitoring until Stop or context cancellation. Derived
// location state is readable in either state.
type Monitor struct {
	store      storage.Provider
	loc        location.Provider
	dispatcher notify.Dispatcher

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	current  *models.LocationFix
	distance *float64
	outside  bool

	now  func() time.Time
	pick func(n int) int
}

func NewMonitor(store storage.Provider, loc location.Provider, dispatcher notify.Dispatcher) *Monitor {
	return &Monitor{
		store:      store,
		loc:        loc,
		dispatcher: dispatcher,
		now:        time.Now,
		pick:       rand.Intn,
	}
}

// Start transitions Idle -> Monitoring. It requires a home location and
// location permission; either missing aborts the start with no state change.
// One fix is fetched immediately so derived state does not wait a full
// interval. Starting while already monitoring restarts the polling loop.
func (m *Monitor) Start(ctx context.Context) error {
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to load safety profile: %w", err)
	}

	if profile.HomeLocation == nil {
		return apperrors.ErrNoHomeLocation
	}

	granted, err := m.loc.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("location permission check failed: %w", err)
	}
	if !granted {
		return apperrors.ErrPermissionDenied
	}

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	prev := m.done
	m.done = nil
	m.mu.Unlock()

	// Wait out the previous loop so two pollers never run at once
	if prev != nil {
		<-prev
	}

	m.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(runCtx, m.done, profile.Interval())
	m.mu.Unlock()

	profile.MonitoringEnabled = true
	if err := m.store.SaveSafetyProfile(profile); err != nil {
		logger.Warn("Failed to persist monitoring state", "error", err)
	}

	// Immediate first fix so the caller sees state without waiting a tick
	if _, err := m.Refresh(ctx); err != nil {
		logger.Warn("Initial location fetch failed", "error", err)
	}

	return nil
}

// Stop transitions Monitoring -> Idle. Calling it while already Idle only
// re-persists the disabled flag.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	done := m.done
	m.done = nil
	m.mu.Unlock()

	if done != nil {
		<-done
	}

	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to load safety profile: %w", err)
	}

	if !profile.MonitoringEnabled {
		return nil
	}

	profile.MonitoringEnabled = false
	if err := m.store.SaveSafetyProfile(profile); err != nil {
		return fmt.Errorf("failed to persist monitoring state: %w", err)
	}

	return nil
}

// Running reports whether the polling loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *Monitor) run(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick performs one monitoring cycle: fetch the current position, recompute
// the distance from home, and dispatch a reminder when the patient is more
// than the threshold away. A failed fetch is logged and leaves the previous
// state stale; the next tick retries independently.
func (m *Monitor) Tick(ctx context.Context) {
	fix, err := m.loc.Current(ctx)
	if err != nil {
		logger.Warn("Location fetch failed", "error", err)
		return
	}

	// Re-read the profile each tick so home/interval edits take effect
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		logger.Warn("Failed to load safety profile", "error", err)
		return
	}

	m.observe(fix, &profile)

	if profile.HomeLocation == nil {
		return
	}

	distance := geo.DistanceMeters(fix.Latitude, fix.Longitude,
		profile.HomeLocation.Latitude, profile.HomeLocation.Longitude)
	if distance > constants.HomeDistanceThresholdMeters {
		if err := m.dispatcher.FireNow(m.reminderPayload(&profile)); err != nil {
			logger.Warn("Failed to dispatch home reminder", "error", err)
		}
	}
}

// Refresh fetches the current position once, outside the timer, and updates
// derived state.
func (m *Monitor) Refresh(ctx context.Context) (models.LocationFix, error) {
	fix, err := m.loc.Current(ctx)
	if err != nil {
		return models.LocationFix{}, err
	}

	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return models.LocationFix{}, fmt.Errorf("failed to load safety profile: %w", err)
	}

	m.observe(fix, &profile)
	return fix, nil
}

// observe updates derived state from a new fix and persists it as the last
// known location.
func (m *Monitor) observe(fix models.LocationFix, profile *models.SafetyProfile) {
	m.mu.Lock()
	m.current = &fix
	if profile.HomeLocation != nil {
		d := geo.DistanceMeters(fix.Latitude, fix.Longitude,
			profile.HomeLocation.Latitude, profile.HomeLocation.Longitude)
		m.distance = &d
		m.outside = d > constants.HomeDistanceThresholdMeters
	} else {
		m.distance = nil
		m.outside = false
	}
	m.mu.Unlock()

	profile.LastKnownLocation = &fix
	if err := m.store.SaveSafetyProfile(*profile); err != nil {
		logger.Warn("Failed to persist last known location", "error", err)
	}
}

// SetHomeLocation updates the home location without changing the monitoring
// state. Derived distance is recomputed against the new home when a fix is
// already available.
func (m *Monitor) SetHomeLocation(home models.HomeLocation) error {
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to load safety profile: %w", err)
	}

	profile.HomeLocation = &home
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := m.store.SaveSafetyProfile(profile); err != nil {
		return fmt.Errorf("failed to save home location: %w", err)
	}

	m.mu.Lock()
	if m.current != nil {
		d := geo.DistanceMeters(m.current.Latitude, m.current.Longitude, home.Latitude, home.Longitude)
		m.distance = &d
		m.outside = d > constants.HomeDistanceThresholdMeters
	}
	m.mu.Unlock()

	return nil
}

// UpdateProfile merges non-location profile fields and persists them.
func (m *Monitor) UpdateProfile(fullName, phone, emergency string, intervalMin int) error {
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to load safety profile: %w", err)
	}

	if fullName != "" {
		profile.FullName = fullName
	}
	if phone != "" {
		profile.PhoneNumber = phone
	}
	if emergency != "" {
		profile.EmergencyContact = emergency
	}
	if intervalMin > 0 {
		profile.ReminderIntervalMinutes = intervalMin
	}

	if err := profile.Validate(); err != nil {
		return err
	}

	if err := m.store.SaveSafetyProfile(profile); err != nil {
		return fmt.Errorf("failed to save safety profile: %w", err)
	}

	return nil
}

// CurrentLocation returns the latest observed fix, nil before the first one.
func (m *Monitor) CurrentLocation() *models.LocationFix {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	fix := *m.current
	return &fix
}

// DistanceFromHome returns the latest distance from home in meters, nil
// until both a fix and a home location exist.
func (m *Monitor) DistanceFromHome() *float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.distance == nil {
		return nil
	}
	d := *m.distance
	return &d
}

// IsOutsideHome reports whether the latest distance exceeds the threshold.
// False until a distance is computable.
func (m *Monitor) IsOutsideHome() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outside
}

// TestAlert sends one home-reminder notification immediately.
func (m *Monitor) TestAlert() error {
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to load safety profile: %w", err)
	}

	if profile.HomeLocation == nil {
		return apperrors.ErrNoHomeLocation
	}

	return m.dispatcher.FireNow(m.reminderPayload(&profile))
}

// DirectionsURL returns a maps deep link pointing to the home location.
func (m *Monitor) DirectionsURL() (string, error) {
	profile, err := m.store.GetSafetyProfile()
	if err != nil {
		return "", fmt.Errorf("failed to load safety profile: %w", err)
	}

	if profile.HomeLocation == nil {
		return "", apperrors.ErrNoHomeLocation
	}

	return fmt.Sprintf("https://maps.google.com/?daddr=%f,%f",
		profile.HomeLocation.Latitude, profile.HomeLocation.Longitude), nil
}

func (m *Monitor) reminderPayload(profile *models.SafetyProfile) notify.Payload {
	home := profile.HomeLocation

	messages := []string{
		fmt.Sprintf("Hello %s! Your home address is:\n%s\n\nOpen Memento to find your way back.", profile.FullName, home.Address),
		fmt.Sprintf("%s, do you remember your home?\n%s\n%s", profile.FullName, home.Name, home.Address),
		fmt.Sprintf("You are safe, %s! Your home: %s\n\nOpen Memento for help.", profile.FullName, home.Address),
	}

	return notify.Payload{
		Title: "🏠 Home Reminder",
		Body:  messages[m.pick(len(messages))],
	}
}
