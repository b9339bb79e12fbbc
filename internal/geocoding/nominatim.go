// Package geocoding resolves US city/state pairs to coordinates.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ngmaloney/divebot/internal/models"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap search endpoint
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	// DefaultUserAgent identifies the bot; required by Nominatim ToS
	DefaultUserAgent = "DiveBot/1.0"
)

// ErrGeocode is returned when a location cannot be resolved
var ErrGeocode = errors.New("geocoding failed")

// Geocoder converts city/state pairs to coordinates via Nominatim
type Geocoder struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	minInterval time.Duration // Nominatim allows 1 req/sec

	mu       sync.Mutex
	lastCall time.Time
}

// NewGeocoder creates a new geocoder. Empty arguments select the defaults.
func NewGeocoder(baseURL, userAgent string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Geocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		minInterval: time.Second,
	}
}

// nominatimResponse represents one Nominatim search candidate
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// ResolveCoordinate geocodes "{city}, {state full name}" and returns the first
// candidate's coordinate. Every call queries the service.
func (g *Geocoder) ResolveCoordinate(ctx context.Context, city, state string) (models.Coordinate, error) {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if city == "" || state == "" {
		return models.Coordinate{}, fmt.Errorf("%w: city and state cannot be empty", ErrGeocode)
	}
	if full, ok := NormalizeState(state); ok {
		state = full
	}

	params := url.Values{}
	params.Add("q", fmt.Sprintf("%s, %s", city, state))
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("countrycodes", "us")

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	g.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: creating request: %v", ErrGeocode, err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: executing request: %v", ErrGeocode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("%w: nominatim API returned status %d", ErrGeocode, resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: decoding response: %v", ErrGeocode, err)
	}

	if len(results) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: no results found for '%s, %s'", ErrGeocode, city, state)
	}

	result := results[0]

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: parsing latitude %q", ErrGeocode, result.Lat)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: parsing longitude %q", ErrGeocode, result.Lon)
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		return models.Coordinate{}, fmt.Errorf("%w: coordinate out of range: %v, %v", ErrGeocode, lat, lon)
	}
	return coord, nil
}

// throttle spaces outbound requests by minInterval
func (g *Geocoder) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.lastCall.IsZero() {
		elapsed := time.Since(g.lastCall)
		if elapsed < g.minInterval {
			time.Sleep(g.minInterval - elapsed)
		}
	}
	g.lastCall = time.Now()
}
