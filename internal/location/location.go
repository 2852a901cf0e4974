// Package location supplies device coordinates on demand.
package location

import (
	"context"
	"errors"

	"github.com/memento-care/memento/internal/models"
)

// ErrNoFix is returned when no current location is available.
var ErrNoFix = errors.New("no location fix available")

// Provider supplies the device's current position. RequestPermission must be
// called before Current; a denial blocks monitoring start but individual
// Current failures are transient.
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	Current(ctx context.Context) (models.LocationFix, error)
}
