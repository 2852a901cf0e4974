// Package geo provides great-circle distance math for home-distance checks.
package geo

import (
	"math"

	"github.com/memento-care/memento/internal/constants"
)

// DistanceMeters returns the Haversine great-circle distance in meters
// between two points given in decimal degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return constants.EarthRadiusMeters * c
}
