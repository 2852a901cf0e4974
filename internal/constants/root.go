package constants

import "time"

// RoutineCategory represents the category of a routine
type RoutineCategory string

// TimeStatus represents where a routine's time falls relative to now
type TimeStatus string

const (
	AppName            = "memento"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/memento/memento.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Routine category constants
	CategoryMedication  RoutineCategory = "medication"
	CategoryMeal        RoutineCategory = "meal"
	CategoryExercise    RoutineCategory = "exercise"
	CategoryAppointment RoutineCategory = "appointment"
	CategoryHygiene     RoutineCategory = "hygiene"
	CategorySocial      RoutineCategory = "social"
	CategoryOther       RoutineCategory = "other"

	// Time status constants
	StatusPast     TimeStatus = "past"
	StatusNow      TimeStatus = "now"
	StatusSoon     TimeStatus = "soon"
	StatusUpcoming TimeStatus = "upcoming"

	// TimeStatusWindowMin is the half-window (in minutes) around a routine's
	// time that separates past/now/soon/upcoming
	TimeStatusWindowMin = 30

	// CompletionRetentionDays is how long completion records are kept before
	// being pruned on load
	CompletionRetentionDays = 30

	// DefaultStatsWindowDays is the rolling window used for completion-rate
	// statistics
	DefaultStatsWindowDays = 7

	// Safety constants
	// HomeDistanceThresholdMeters is the distance beyond which the patient is
	// considered outside home. No UI exposes changing it yet.
	HomeDistanceThresholdMeters = 100.0
	DefaultReminderIntervalMin  = 15
	EarthRadiusMeters           = 6371000.0

	// MaxFixAge is how old an agent-reported location fix may be before it is
	// treated as unavailable
	MaxFixAge = 5 * time.Minute

	// Notifier constants
	NotifierLockfileName   = "memento-agent.lock"
	AgentFixFileName       = "memento-location.json"
	NotificationDurationMs = 5000
	AgentAppIdentifier     = "com.memento-care.memento"
)

// DayNames maps time.Weekday index (0=Sunday) to short display names
var DayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
