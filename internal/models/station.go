package models

import (
	"math"
	"time"
)

// Coordinate is a latitude/longitude pair in degrees
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are finite and within range
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// StationCategory is the catalog partition a station was loaded from
type StationCategory int

const (
	CategoryPrimaryOceanographic StationCategory = iota
	CategoryGeneral
)

func (c StationCategory) String() string {
	switch c {
	case CategoryPrimaryOceanographic:
		return "primary_oceanographic"
	case CategoryGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// Station represents a NOAA monitoring station
type Station struct {
	ID         string // opaque, even when numeric-looking
	Name       string
	State      string
	Coordinate Coordinate
	Category   StationCategory
	// TimeZone is the station's local zone, which NOAA uses for lst_ldt
	// timestamps. Nil when the snapshot does not say.
	TimeZone *time.Location
}
