package safety

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "github.com/memento-care/memento/internal/errors"
	"github.com/memento-care/memento/internal/models"
	"github.com/memento-care/memento/internal/notify"
)

// profileStore is a storage.Provider stub carrying only the safety profile.
type profileStore struct {
	profile models.SafetyProfile
	saves   int
	loadErr error
}

func (p *profileStore) Init() error  { return nil }
func (p *profileStore) Load() error  { return nil }
func (p *profileStore) Close() error { return nil }

func (p *profileStore) AddRoutine(models.Routine) error { return nil }
func (p *profileStore) GetRoutine(string) (models.Routine, error) {
	return models.Routine{}, fmt.Errorf("not found")
}
func (p *profileStore) GetAllRoutines() ([]models.Routine, error) { return nil, nil }
func (p *profileStore) UpdateRoutine(models.Routine) error        { return nil }
func (p *profileStore) DeleteRoutine(string) error                { return nil }

func (p *profileStore) AddCompletion(models.Completion) error { return nil }
func (p *profileStore) GetCompletion(string, string) (models.Completion, error) {
	return models.Completion{}, fmt.Errorf("not found")
}
func (p *profileStore) GetAllCompletions() ([]models.Completion, error) { return nil, nil }
func (p *profileStore) GetCompletionsSince(string) ([]models.Completion, error) {
	return nil, nil
}
func (p *profileStore) PruneCompletionsBefore(string) error { return nil }

func (p *profileStore) GetSafetyProfile() (models.SafetyProfile, error) {
	if p.loadErr != nil {
		return models.SafetyProfile{}, p.loadErr
	}
	return p.profile, nil
}

func (p *profileStore) SaveSafetyProfile(profile models.SafetyProfile) error {
	p.profile = profile
	p.saves++
	return nil
}

func (p *profileStore) GetConfigPath() string { return "fake" }

// scriptedProvider returns a fixed position and permission answer.
type scriptedProvider struct {
	granted bool
	lat     float64
	lon     float64
	err     error
}

func (s *scriptedProvider) RequestPermission(ctx context.Context) (bool, error) {
	return s.granted, nil
}

func (s *scriptedProvider) Current(ctx context.Context) (models.LocationFix, error) {
	if s.err != nil {
		return models.LocationFix{}, s.err
	}
	return models.LocationFix{Latitude: s.lat, Longitude: s.lon, Accuracy: 5, Timestamp: time.Now()}, nil
}

type capturingDispatcher struct {
	fired []notify.Payload
}

func (c *capturingDispatcher) ScheduleRecurring(string, notify.Payload) (string, error) {
	return "handle", nil
}
func (c *capturingDispatcher) Cancel(string) error { return nil }
func (c *capturingDispatcher) FireNow(p notify.Payload) error {
	c.fired = append(c.fired, p)
	return nil
}

func homeProfile() models.SafetyProfile {
	p := models.DefaultSafetyProfile("Ada")
	p.HomeLocation = &models.HomeLocation{
		Latitude:  41.0082,
		Longitude: 28.9784,
		Address:   "1 Main St",
		Name:      "My Home",
	}
	return p
}

func newTestMonitor(store *profileStore, loc *scriptedProvider) (*Monitor, *capturingDispatcher) {
	dispatcher := &capturingDispatcher{}
	m := NewMonitor(store, loc, dispatcher)
	m.pick = func(n int) int { return 0 }
	return m, dispatcher
}

func TestStartRequiresHomeLocation(t *testing.T) {
	store := &profileStore{profile: models.DefaultSafetyProfile("Ada")}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true})

	err := m.Start(context.Background())
	if !errors.Is(err, apperrors.ErrNoHomeLocation) {
		t.Fatalf("Start() without home = %v, want ErrNoHomeLocation", err)
	}
	if m.Running() {
		t.Error("failed start must not leave the monitor running")
	}
	if store.profile.MonitoringEnabled {
		t.Error("failed start must not flip the monitoring flag")
	}
}

func TestStartRequiresPermission(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: false})

	err := m.Start(context.Background())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("Start() without permission = %v, want ErrPermissionDenied", err)
	}
	if m.Running() {
		t.Error("failed start must not leave the monitor running")
	}
}

func TestStartAndStop(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	// 10m east of home
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true, lat: 41.0082, lon: 28.9784})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !m.Running() {
		t.Error("monitor should be running after Start()")
	}
	if !store.profile.MonitoringEnabled {
		t.Error("Start() should persist the monitoring flag")
	}

	// First fix is fetched immediately
	if m.CurrentLocation() == nil {
		t.Error("Start() should fetch an initial fix")
	}

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if m.Running() {
		t.Error("monitor should be idle after Stop()")
	}
	if store.profile.MonitoringEnabled {
		t.Error("Stop() should persist the monitoring flag off")
	}

	// Stopping again is a no-op
	if err := m.Stop(); err != nil {
		t.Errorf("second Stop() failed: %v", err)
	}
}

func TestStartWhileRunningRestarts(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true, lat: 41.0082, lon: 28.9784})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("first Start() failed: %v", err)
	}

	// A second Start replaces the polling loop; the old one must be fully
	// retired before the new one spawns
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}
	if !m.Running() {
		t.Error("monitor should be running after restart")
	}

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if m.Running() {
		t.Error("monitor should be idle after Stop()")
	}
}

func TestTickFiresWhenOutsideThreshold(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	// Roughly 1.5km north of home
	loc := &scriptedProvider{granted: true, lat: 41.0217, lon: 28.9784}
	m, dispatcher := newTestMonitor(store, loc)

	m.Tick(context.Background())

	if len(dispatcher.fired) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(dispatcher.fired))
	}

	alert := dispatcher.fired[0]
	if alert.Title != "🏠 Home Reminder" {
		t.Errorf("alert title = %q", alert.Title)
	}
	if !strings.Contains(alert.Body, "Ada") || !strings.Contains(alert.Body, "1 Main St") {
		t.Errorf("alert body should carry name and address: %q", alert.Body)
	}

	if !m.IsOutsideHome() {
		t.Error("monitor should report outside home")
	}
	if d := m.DistanceFromHome(); d == nil || *d < 1000 {
		t.Errorf("distance should be about 1.5km, got %v", d)
	}
	if store.profile.LastKnownLocation == nil {
		t.Error("tick should persist the last known location")
	}
}

func TestTickDistanceThresholdIsStrict(t *testing.T) {
	home := homeProfile()

	// 0.0009 degrees of latitude is about 100.1m
	tests := []struct {
		name     string
		deltaLat float64
		want     bool
	}{
		{name: "well inside", deltaLat: 0.0001, want: false},
		{name: "just under threshold", deltaLat: 0.000895, want: false},
		{name: "just over threshold", deltaLat: 0.000905, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &profileStore{profile: home}
			loc := &scriptedProvider{
				granted: true,
				lat:     home.HomeLocation.Latitude + tt.deltaLat,
				lon:     home.HomeLocation.Longitude,
			}
			m, dispatcher := newTestMonitor(store, loc)

			m.Tick(context.Background())

			if m.IsOutsideHome() != tt.want {
				t.Errorf("IsOutsideHome() = %v, want %v", m.IsOutsideHome(), tt.want)
			}
			fired := len(dispatcher.fired) > 0
			if fired != tt.want {
				t.Errorf("alert fired = %v, want %v", fired, tt.want)
			}
		})
	}
}

func TestTickSurvivesLocationFailure(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	loc := &scriptedProvider{granted: true, err: fmt.Errorf("gps unavailable")}
	m, dispatcher := newTestMonitor(store, loc)

	m.Tick(context.Background())

	if len(dispatcher.fired) != 0 {
		t.Error("a failed fix must not fire an alert")
	}
	if m.CurrentLocation() != nil {
		t.Error("a failed fix must not fabricate a location")
	}

	// Next tick with a good fix recovers
	loc.err = nil
	loc.lat, loc.lon = 41.0082, 28.9784
	m.Tick(context.Background())
	if m.CurrentLocation() == nil {
		t.Error("monitor should recover on the next good fix")
	}
}

func TestReminderMessagePool(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	m, dispatcher := newTestMonitor(store, &scriptedProvider{granted: true})

	for i := 0; i < 3; i++ {
		idx := i
		m.pick = func(n int) int {
			if n != 3 {
				t.Fatalf("message pool size = %d, want 3", n)
			}
			return idx
		}
		if err := m.TestAlert(); err != nil {
			t.Fatalf("TestAlert() failed: %v", err)
		}
	}

	if len(dispatcher.fired) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(dispatcher.fired))
	}
	seen := make(map[string]bool)
	for _, p := range dispatcher.fired {
		seen[p.Body] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct messages, got %d", len(seen))
	}
}

func TestTestAlertRequiresHome(t *testing.T) {
	store := &profileStore{profile: models.DefaultSafetyProfile("Ada")}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true})

	if err := m.TestAlert(); !errors.Is(err, apperrors.ErrNoHomeLocation) {
		t.Errorf("TestAlert() without home = %v, want ErrNoHomeLocation", err)
	}
}

func TestSetHomeLocation(t *testing.T) {
	store := &profileStore{profile: models.DefaultSafetyProfile("Ada")}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true, lat: 41.0082, lon: 28.9784})

	// Seed a current fix
	if _, err := m.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.DistanceFromHome() != nil {
		t.Error("distance should be unknown before a home is set")
	}

	home := models.HomeLocation{Latitude: 41.0082, Longitude: 28.9784, Address: "1 Main St", Name: "Home"}
	if err := m.SetHomeLocation(home); err != nil {
		t.Fatalf("SetHomeLocation() failed: %v", err)
	}

	if store.profile.HomeLocation == nil || store.profile.HomeLocation.Address != "1 Main St" {
		t.Error("home location should be persisted")
	}
	if d := m.DistanceFromHome(); d == nil || *d > 1 {
		t.Errorf("distance should be recomputed against the new home, got %v", d)
	}

	if err := m.SetHomeLocation(models.HomeLocation{Latitude: 95}); err == nil {
		t.Error("SetHomeLocation() should reject out-of-range coordinates")
	}
}

func TestDirectionsURL(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true})

	url, err := m.DirectionsURL()
	if err != nil {
		t.Fatalf("DirectionsURL() failed: %v", err)
	}
	if !strings.Contains(url, "maps.google.com") || !strings.Contains(url, "41.0082") {
		t.Errorf("unexpected directions url: %q", url)
	}

	store.profile.HomeLocation = nil
	if _, err := m.DirectionsURL(); !errors.Is(err, apperrors.ErrNoHomeLocation) {
		t.Errorf("DirectionsURL() without home = %v, want ErrNoHomeLocation", err)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	store := &profileStore{profile: homeProfile()}
	m, _ := newTestMonitor(store, &scriptedProvider{granted: true})

	if err := m.UpdateProfile("", "555-0100", "", 30); err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}

	if store.profile.FullName != "Ada" {
		t.Error("empty name must leave the existing name untouched")
	}
	if store.profile.PhoneNumber != "555-0100" {
		t.Errorf("phone = %q, want 555-0100", store.profile.PhoneNumber)
	}
	if store.profile.ReminderIntervalMinutes != 30 {
		t.Errorf("interval = %d, want 30", store.profile.ReminderIntervalMinutes)
	}
}
