package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "memento.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRoutine(id, title string) models.Routine {
	return models.Routine{
		ID:        id,
		Title:     title,
		Category:  constants.CategoryMedication,
		Time:      "08:00",
		Days:      []time.Weekday{time.Monday, time.Friday},
		Enabled:   true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestLoadWithoutInitFails(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	store := newTestStore(t)

	r := testRoutine("r1", "Morning pills")
	r.Description = "With water"
	r.ReminderHandle = "handle-1"

	if err := store.AddRoutine(r); err != nil {
		t.Fatalf("AddRoutine() failed: %v", err)
	}

	got, err := store.GetRoutine("r1")
	if err != nil {
		t.Fatalf("GetRoutine() failed: %v", err)
	}
	if got.Title != r.Title || got.Description != r.Description || got.Time != r.Time {
		t.Errorf("routine did not round trip: %+v", got)
	}
	if got.Category != constants.CategoryMedication {
		t.Errorf("category = %q, want medication", got.Category)
	}
	if len(got.Days) != 2 || got.Days[0] != time.Monday || got.Days[1] != time.Friday {
		t.Errorf("days did not round trip: %v", got.Days)
	}
	if !got.Enabled || got.ReminderHandle != "handle-1" {
		t.Errorf("flags did not round trip: enabled=%v handle=%q", got.Enabled, got.ReminderHandle)
	}
}

func TestRoutineUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)

	r := testRoutine("r1", "Walk")
	if err := store.AddRoutine(r); err != nil {
		t.Fatal(err)
	}

	r.Title = "Evening walk"
	r.Enabled = false
	r.Days = []time.Weekday{time.Sunday}
	if err := store.UpdateRoutine(r); err != nil {
		t.Fatalf("UpdateRoutine() failed: %v", err)
	}

	got, err := store.GetRoutine("r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Evening walk" || got.Enabled || len(got.Days) != 1 {
		t.Errorf("update did not stick: %+v", got)
	}

	if err := store.DeleteRoutine("r1"); err != nil {
		t.Fatalf("DeleteRoutine() failed: %v", err)
	}
	if _, err := store.GetRoutine("r1"); err == nil {
		t.Error("GetRoutine() after delete should fail")
	}
}

func TestGetAllRoutines(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := store.AddRoutine(testRoutine(id, "Routine "+id)); err != nil {
			t.Fatal(err)
		}
	}

	routines, err := store.GetAllRoutines()
	if err != nil {
		t.Fatalf("GetAllRoutines() failed: %v", err)
	}
	if len(routines) != 3 {
		t.Errorf("GetAllRoutines() returned %d routines, want 3", len(routines))
	}
}

func TestCompletionIdempotency(t *testing.T) {
	store := newTestStore(t)

	c := models.Completion{RoutineID: "r1", CompletedAt: time.Now(), Date: "2026-08-24"}
	if err := store.AddCompletion(c); err != nil {
		t.Fatalf("AddCompletion() failed: %v", err)
	}
	// Duplicate (routine, date) must be swallowed by the primary key
	if err := store.AddCompletion(c); err != nil {
		t.Fatalf("duplicate AddCompletion() failed: %v", err)
	}

	all, err := store.GetAllCompletions()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 completion, got %d", len(all))
	}
}

func TestCompletionsSinceAndPrune(t *testing.T) {
	store := newTestStore(t)

	for _, date := range []string{"2026-07-20", "2026-08-10", "2026-08-24"} {
		err := store.AddCompletion(models.Completion{RoutineID: "r1", CompletedAt: time.Now(), Date: date})
		if err != nil {
			t.Fatal(err)
		}
	}

	since, err := store.GetCompletionsSince("2026-08-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 2 {
		t.Errorf("GetCompletionsSince() returned %d, want 2", len(since))
	}

	if err := store.PruneCompletionsBefore("2026-08-01"); err != nil {
		t.Fatalf("PruneCompletionsBefore() failed: %v", err)
	}
	all, _ := store.GetAllCompletions()
	if len(all) != 2 {
		t.Errorf("expected 2 completions after prune, got %d", len(all))
	}
}

func TestSafetyProfileSingleton(t *testing.T) {
	store := newTestStore(t)

	// Fresh database reads as defaults
	p, err := store.GetSafetyProfile()
	if err != nil {
		t.Fatalf("GetSafetyProfile() failed: %v", err)
	}
	if p.MonitoringEnabled {
		t.Error("fresh profile should have monitoring off")
	}

	p.FullName = "Ada"
	p.PhoneNumber = "555-0100"
	p.HomeLocation = &models.HomeLocation{Latitude: 41.0082, Longitude: 28.9784, Address: "1 Main St", Name: "Home"}
	p.MonitoringEnabled = true
	p.ReminderIntervalMinutes = 20
	now := time.Now().UTC().Truncate(time.Second)
	p.LastKnownLocation = &models.LocationFix{Latitude: 41.01, Longitude: 28.98, Accuracy: 5, Timestamp: now}

	if err := store.SaveSafetyProfile(p); err != nil {
		t.Fatalf("SaveSafetyProfile() failed: %v", err)
	}

	// Saving again must update the same row, not add another
	p.FullName = "Ada L."
	if err := store.SaveSafetyProfile(p); err != nil {
		t.Fatalf("second SaveSafetyProfile() failed: %v", err)
	}

	got, err := store.GetSafetyProfile()
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != "Ada L." || !got.MonitoringEnabled || got.ReminderIntervalMinutes != 20 {
		t.Errorf("profile did not round trip: %+v", got)
	}
	if got.HomeLocation == nil || got.HomeLocation.Address != "1 Main St" {
		t.Errorf("home location did not round trip: %+v", got.HomeLocation)
	}
	if got.LastKnownLocation == nil || !got.LastKnownLocation.Timestamp.Equal(now) {
		t.Errorf("last known location did not round trip: %+v", got.LastKnownLocation)
	}
}
