// Package geo provides great-circle distance calculations
package geo

import (
	"math"

	"github.com/ngmaloney/divebot/internal/models"
)

const (
	// EarthRadiusKm is the mean Earth radius used by DistanceKm
	EarthRadiusKm = 6371.0

	// KmPerMile converts statute miles to kilometers
	KmPerMile = 1.609344
)

// Unreachable is returned for coordinates that cannot be measured.
// It compares greater than any real distance on Earth.
const Unreachable = math.MaxFloat64

// DistanceKm calculates the haversine distance in kilometers between two points.
// NaN or infinite components yield Unreachable rather than an error so a caller
// scanning many stations can treat a malformed record as simply far away.
func DistanceKm(a, b models.Coordinate) float64 {
	if !finite(a) || !finite(b) {
		return Unreachable
	}

	// Convert to radians
	lat1Rad := a.Latitude * math.Pi / 180
	lat2Rad := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLon := (b.Longitude - a.Longitude) * math.Pi / 180

	// Haversine formula
	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// MilesToKm converts statute miles to kilometers
func MilesToKm(miles float64) float64 {
	return miles * KmPerMile
}

func finite(c models.Coordinate) bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude) &&
		!math.IsInf(c.Latitude, 0) && !math.IsInf(c.Longitude, 0)
}
