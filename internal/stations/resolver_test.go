package stations

import (
	"errors"
	"math"
	"testing"

	"github.com/ngmaloney/divebot/internal/models"
)

// Offsets are due north of origin; one degree of latitude is ~111.19 km.
var origin = models.Coordinate{Latitude: 40.0, Longitude: -70.0}

func stationAt(id string, latOffset float64) models.Station {
	return models.Station{
		ID:         id,
		Name:       "Station " + id,
		Coordinate: models.Coordinate{Latitude: origin.Latitude + latOffset, Longitude: origin.Longitude},
	}
}

func TestResolveNearest(t *testing.T) {
	tests := []struct {
		name         string
		primary      []models.Station
		general      []models.Station
		wantID       string
		wantCategory models.StationCategory
	}{
		{
			name:         "primary within threshold beats closer general",
			primary:      []models.Station{stationAt("P10KM", 0.09)},
			general:      []models.Station{stationAt("G1KM", 0.009)},
			wantID:       "P10KM",
			wantCategory: models.CategoryPrimaryOceanographic,
		},
		{
			name:         "falls back to general when primary exceeds threshold",
			primary:      []models.Station{stationAt("P200KM", 1.8)},
			general:      []models.Station{stationAt("G5KM", 0.045)},
			wantID:       "G5KM",
			wantCategory: models.CategoryGeneral,
		},
		{
			name:         "general returned regardless of distance",
			primary:      []models.Station{stationAt("P200KM", 1.8)},
			general:      []models.Station{stationAt("G500KM", 4.5)},
			wantID:       "G500KM",
			wantCategory: models.CategoryGeneral,
		},
		{
			name:         "empty primary uses general",
			general:      []models.Station{stationAt("FAR", 2), stationAt("NEAR", 0.5)},
			wantID:       "NEAR",
			wantCategory: models.CategoryGeneral,
		},
		{
			name:         "empty general falls back to distant primary",
			primary:      []models.Station{stationAt("P200KM", 1.8)},
			wantID:       "P200KM",
			wantCategory: models.CategoryPrimaryOceanographic,
		},
		{
			name:         "nearest primary chosen among several",
			primary:      []models.Station{stationAt("P50", 0.45), stationAt("P20", 0.18), stationAt("P70", 0.63)},
			wantID:       "P20",
			wantCategory: models.CategoryPrimaryOceanographic,
		},
		{
			name:         "ties go to first in catalog order",
			general:      []models.Station{stationAt("FIRST", 0.3), stationAt("SECOND", 0.3)},
			wantID:       "FIRST",
			wantCategory: models.CategoryGeneral,
		},
		{
			name: "malformed coordinates are skipped",
			general: []models.Station{
				{ID: "BAD", Coordinate: models.Coordinate{Latitude: math.NaN(), Longitude: -70}},
				stationAt("GOOD", 3),
			},
			wantID:       "GOOD",
			wantCategory: models.CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := NewCatalog(tt.primary, tt.general)
			match, err := ResolveNearest(origin, catalog, DefaultThresholdKm)
			if err != nil {
				t.Fatalf("ResolveNearest() error = %v", err)
			}
			if match.Station.ID != tt.wantID {
				t.Errorf("ResolveNearest() = %s, want %s", match.Station.ID, tt.wantID)
			}
			if match.Station.Category != tt.wantCategory {
				t.Errorf("ResolveNearest() category = %v, want %v", match.Station.Category, tt.wantCategory)
			}
		})
	}
}

func TestResolveNearest_ReportsDistance(t *testing.T) {
	catalog := NewCatalog([]models.Station{stationAt("P10KM", 0.09)}, nil)

	match, err := ResolveNearest(origin, catalog, DefaultThresholdKm)
	if err != nil {
		t.Fatalf("ResolveNearest() error = %v", err)
	}
	if math.Abs(match.DistanceKm-10.0) > 0.1 {
		t.Errorf("DistanceKm = %.3f, want ~10", match.DistanceKm)
	}
}

func TestResolveNearest_ThresholdIsInclusive(t *testing.T) {
	catalog := NewCatalog(
		[]models.Station{stationAt("P", 0.5)},
		[]models.Station{stationAt("G", 0.1)},
	)
	// P is ~55.6 km away, G ~11 km.
	match, err := ResolveNearest(origin, catalog, 55.6)
	if err != nil {
		t.Fatalf("ResolveNearest() error = %v", err)
	}
	if match.Station.ID != "P" {
		t.Errorf("primary at ~55.6 km should satisfy a 55.6 km threshold, got %s", match.Station.ID)
	}

	match, err = ResolveNearest(origin, catalog, 50)
	if err != nil {
		t.Fatalf("ResolveNearest() error = %v", err)
	}
	if match.Station.ID != "G" {
		t.Errorf("primary beyond threshold should fall back, got %s", match.Station.ID)
	}
}

func TestResolveNearest_NoStation(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
	}{
		{"nil catalog", nil},
		{"empty catalog", NewCatalog(nil, nil)},
		{"only malformed", NewCatalog(nil, []models.Station{{ID: "BAD", Coordinate: models.Coordinate{Latitude: math.NaN()}}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveNearest(origin, tt.catalog, DefaultThresholdKm)
			if !errors.Is(err, ErrNoStationFound) {
				t.Errorf("ResolveNearest() error = %v, want ErrNoStationFound", err)
			}
		})
	}
}

func TestDefaultThresholdKm(t *testing.T) {
	if math.Abs(DefaultThresholdKm-80.47) > 0.01 {
		t.Errorf("DefaultThresholdKm = %v, want ~80.47", DefaultThresholdKm)
	}
}
