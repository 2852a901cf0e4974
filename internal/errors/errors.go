package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/memento-care/memento/internal/logger"
)

// User-facing conditions surfaced by the safety monitor. Distinct from
// generic collaborator failures so the caller can present them directly.
var (
	// ErrNoHomeLocation is returned when monitoring is started before a home
	// location has been set
	ErrNoHomeLocation = errors.New("home location is not set")
	// ErrPermissionDenied is returned when the location provider refuses
	// permission
	ErrPermissionDenied = errors.New("location permission denied")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
