package location

import (
	"context"
	"time"

	"github.com/memento-care/memento/internal/models"
)

// FixedProvider always reports the same coordinates. Used by tests and the
// doctor command.
type FixedProvider struct {
	Latitude  float64
	Longitude float64
	Granted   bool
}

func (p *FixedProvider) RequestPermission(ctx context.Context) (bool, error) {
	return p.Granted, nil
}

func (p *FixedProvider) Current(ctx context.Context) (models.LocationFix, error) {
	return models.LocationFix{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  5,
		Timestamp: time.Now(),
	}, nil
}
