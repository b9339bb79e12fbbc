package stations

import (
	"errors"

	"github.com/ngmaloney/divebot/internal/geo"
	"github.com/ngmaloney/divebot/internal/models"
)

// DefaultThresholdKm is how far (50 miles) a primary-oceanographic station may
// be before the resolver falls back to the general partition.
var DefaultThresholdKm = geo.MilesToKm(50)

// ErrNoStationFound is returned when neither partition has a usable station
var ErrNoStationFound = errors.New("no station found")

// Match is the station chosen by ResolveNearest and its distance from the query point
type Match struct {
	Station    models.Station
	DistanceKm float64
}

// ResolveNearest finds the station to report on for coord.
//
// The nearest primary-oceanographic station wins if it is within thresholdKm.
// Otherwise the nearest general station is returned regardless of distance,
// falling back to the nearest primary station when the general partition has
// no usable entry. Ties go to the first station in catalog order.
func ResolveNearest(coord models.Coordinate, catalog *Catalog, thresholdKm float64) (Match, error) {
	if catalog == nil {
		return Match{}, ErrNoStationFound
	}

	primary, havePrimary := nearest(coord, catalog.Primary())
	if havePrimary && primary.DistanceKm <= thresholdKm {
		return primary, nil
	}

	if general, ok := nearest(coord, catalog.General()); ok {
		return general, nil
	}
	if havePrimary {
		return primary, nil
	}
	return Match{}, ErrNoStationFound
}

// nearest is a linear minimum-distance scan. Unreachable entries never match.
func nearest(coord models.Coordinate, candidates []models.Station) (Match, bool) {
	best := Match{DistanceKm: geo.Unreachable}
	found := false
	for _, s := range candidates {
		d := geo.DistanceKm(coord, s.Coordinate)
		if d < best.DistanceKm {
			best = Match{Station: s, DistanceKm: d}
			found = true
		}
	}
	return best, found
}
