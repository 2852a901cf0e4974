// Package notify provides reminder notification dispatch: immediate
// notifications and recurring time-of-day reminders with cancellable handles.
package notify

// Payload is the content of a notification.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// RoutineID identifies the routine or context the notification belongs to
	RoutineID string `json:"routine_id,omitempty"`
}

// Dispatcher schedules and fires notifications. ScheduleRecurring registers a
// reminder that fires daily at the given time of day and returns an opaque
// handle used to cancel or replace it later.
type Dispatcher interface {
	ScheduleRecurring(timeOfDay string, payload Payload) (string, error)
	Cancel(handle string) error
	FireNow(payload Payload) error
}

// Sender delivers a single notification to the user right now.
type Sender interface {
	Send(payload Payload) error
}
