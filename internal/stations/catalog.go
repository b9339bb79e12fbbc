// Package stations loads the NOAA station catalog and resolves the nearest
// station to a coordinate.
package stations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ngmaloney/divebot/internal/models"
)

// Snapshot file names written by Refresh and read by LoadDir
const (
	PrimarySnapshot = "noaa_stations_physocean.json"
	GeneralSnapshot = "noaa_stations_tidepredictions.json"
)

// ErrCatalogLoad is returned when a snapshot file is missing or malformed
var ErrCatalogLoad = errors.New("station catalog load failed")

// Catalog is an immutable, partitioned set of stations.
// A station ID appears in exactly one partition; primary wins on duplicates.
type Catalog struct {
	primary []models.Station
	general []models.Station
	byID    map[string]models.Station
}

// NewCatalog builds a catalog from the two partitions, assigning categories and
// dropping any general station whose ID already appears in the primary set.
func NewCatalog(primary, general []models.Station) *Catalog {
	c := &Catalog{
		primary: make([]models.Station, 0, len(primary)),
		general: make([]models.Station, 0, len(general)),
		byID:    make(map[string]models.Station, len(primary)+len(general)),
	}
	for _, s := range primary {
		if _, dup := c.byID[s.ID]; dup {
			continue
		}
		s.Category = models.CategoryPrimaryOceanographic
		c.primary = append(c.primary, s)
		c.byID[s.ID] = s
	}
	for _, s := range general {
		if _, dup := c.byID[s.ID]; dup {
			continue
		}
		s.Category = models.CategoryGeneral
		c.general = append(c.general, s)
		c.byID[s.ID] = s
	}
	return c
}

// Primary returns the primary-oceanographic partition in load order
func (c *Catalog) Primary() []models.Station { return c.primary }

// General returns the general partition in load order
func (c *Catalog) General() []models.Station { return c.general }

// Len returns the total number of stations
func (c *Catalog) Len() int { return len(c.primary) + len(c.general) }

// Lookup retrieves a station by ID
func (c *Catalog) Lookup(id string) (models.Station, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// LoadDir loads the catalog from the standard snapshot names in dir
func LoadDir(dir string) (*Catalog, error) {
	return Load(filepath.Join(dir, PrimarySnapshot), filepath.Join(dir, GeneralSnapshot))
}

// Load reads both snapshot files into a new catalog
func Load(primaryPath, generalPath string) (*Catalog, error) {
	primary, err := readSnapshot(primaryPath)
	if err != nil {
		return nil, err
	}
	general, err := readSnapshot(generalPath)
	if err != nil {
		return nil, err
	}
	return NewCatalog(primary, general), nil
}

// snapshotRecord mirrors one entry of the MDAPI stations array.
// Pointer fields distinguish "missing" from zero values.
type snapshotRecord struct {
	ID           *flexString `json:"id"`
	Name         *string     `json:"name"`
	State        string      `json:"state"`
	Lat          *flexFloat  `json:"lat"`
	Lng          *flexFloat  `json:"lng"`
	TimeZoneCorr *flexFloat  `json:"timezonecorr"`
	ObservedST   bool        `json:"observedst"`
}

func readSnapshot(path string) ([]models.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCatalogLoad, path, err)
	}

	stations, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogLoad, path, err)
	}
	return stations, nil
}

// decodeSnapshot parses a stations array, rejecting any record without an
// id, name, lat or lng.
func decodeSnapshot(data []byte) ([]models.Station, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding stations: %w", err)
	}

	stations := make([]models.Station, 0, len(records))
	for i, r := range records {
		if r.ID == nil || *r.ID == "" || r.Name == nil || r.Lat == nil || r.Lng == nil {
			return nil, fmt.Errorf("record %d is missing id, name, lat or lng", i)
		}
		s := models.Station{
			ID:    string(*r.ID),
			Name:  *r.Name,
			State: r.State,
			Coordinate: models.Coordinate{
				Latitude:  float64(*r.Lat),
				Longitude: float64(*r.Lng),
			},
		}
		if r.TimeZoneCorr != nil {
			s.TimeZone = stationZone(float64(*r.TimeZoneCorr), r.ObservedST)
		}
		stations = append(stations, s)
	}
	return stations, nil
}

// flexString accepts a JSON string or number; station ids show up as both.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("null station id")
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or numeric string. A string that does not
// parse becomes NaN, which the distance calculation treats as unreachable.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = flexFloat(math.NaN())
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			parsed = math.NaN()
		}
		*f = flexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
