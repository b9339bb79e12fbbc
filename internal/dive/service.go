// Package dive runs the location-to-report pipeline behind the chat commands.
package dive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/models"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/observability"
	"github.com/ngmaloney/divebot/internal/report"
	"github.com/ngmaloney/divebot/internal/stations"
)

// ErrWeatherService is returned when the NWS forecast cannot be fetched
var ErrWeatherService = errors.New("weather service error")

// Geocoder resolves a city and state to a coordinate
type Geocoder interface {
	ResolveCoordinate(ctx context.Context, city, state string) (models.Coordinate, error)
}

// CatalogSource publishes the station catalog to resolve against
type CatalogSource interface {
	Current() *stations.Catalog
}

// Result is a rendered tide report and the station it was built from
type Result struct {
	Text       string
	Station    models.Station
	DistanceKm float64
}

// Config holds the Service dependencies. Weather, Clock, Logger and Metrics
// are optional.
type Config struct {
	Geocoder    Geocoder
	Catalog     CatalogSource
	Tides       noaa.TideClient
	Weather     noaa.WeatherClient
	ThresholdKm float64
	Location    *time.Location
	Clock       clockwork.Clock
	Logger      *slog.Logger
	Metrics     *observability.Metrics
}

// Service orchestrates geocoding, station resolution and NOAA fetches
type Service struct {
	geocoder    Geocoder
	catalog     CatalogSource
	tides       noaa.TideClient
	weather     noaa.WeatherClient
	thresholdKm float64
	location    *time.Location
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewService creates a new dive service
func NewService(cfg Config) *Service {
	s := &Service{
		geocoder:    cfg.Geocoder,
		catalog:     cfg.Catalog,
		tides:       cfg.Tides,
		weather:     cfg.Weather,
		thresholdKm: cfg.ThresholdKm,
		location:    cfg.Location,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
	if s.thresholdKm <= 0 {
		s.thresholdKm = stations.DefaultThresholdKm
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = observability.DiscardLogger()
	}
	return s
}

// Report builds the tide report for a free-text "City, State" location.
// Steps run sequentially; only the water temperature may be missing.
func (s *Service) Report(ctx context.Context, location string) (Result, error) {
	start := s.clock.Now()
	res, err := s.report(ctx, location)
	s.observe(start, err)
	return res, err
}

func (s *Service) report(ctx context.Context, location string) (Result, error) {
	city, state, coord, err := s.locate(ctx, location)
	if err != nil {
		return Result{}, err
	}

	match, err := stations.ResolveNearest(coord, s.catalog.Current(), s.thresholdKm)
	if err != nil {
		return Result{}, fmt.Errorf("resolving station for %s, %s: %w", city, state, err)
	}
	s.countStation(match.Station.Category)

	logger := s.logger.With("location", location, "station", match.Station.ID)
	logger.Debug("station resolved",
		"category", match.Station.Category.String(),
		"distance_km", match.DistanceKm,
	)

	predictions, err := s.tides.FetchTidePredictions(ctx, match.Station)
	if err != nil {
		s.countFetch("predictions", "error")
		return Result{}, fmt.Errorf("fetching tides for station %s: %w", match.Station.ID, err)
	}
	s.countFetch("predictions", "success")

	temperature := s.tides.FetchWaterTemperature(ctx, match.Station.ID)
	if temperature == nil {
		s.countFetch("water_temperature", "error")
		logger.Warn("reporting without water temperature")
	} else {
		s.countFetch("water_temperature", "success")
	}

	text := report.FormatReport(predictions, temperature, city, state, s.clock.Now(), s.location)
	logger.Info("tide report built", "predictions", len(predictions))

	return Result{Text: text, Station: match.Station, DistanceKm: match.DistanceKm}, nil
}

// Weather builds the current forecast message for a location
func (s *Service) Weather(ctx context.Context, location string) (string, error) {
	if s.weather == nil {
		return "", fmt.Errorf("%w: no weather client configured", ErrWeatherService)
	}

	city, state, coord, err := s.locate(ctx, location)
	if err != nil {
		return "", err
	}

	forecast, err := s.weather.FetchForecast(ctx, coord)
	if err != nil {
		s.countFetch("forecast", "error")
		s.logger.Warn("forecast unavailable", "location", location, "error", err)
		return "", fmt.Errorf("%w: %v", ErrWeatherService, err)
	}
	s.countFetch("forecast", "success")

	return report.FormatForecast(fmt.Sprintf("%s, %s", city, state), forecast), nil
}

func (s *Service) locate(ctx context.Context, location string) (string, string, models.Coordinate, error) {
	city, state, err := geocoding.ParseLocation(location)
	if err != nil {
		return "", "", models.Coordinate{}, err
	}

	coord, err := s.geocoder.ResolveCoordinate(ctx, city, state)
	if err != nil {
		s.countGeocode("error")
		return "", "", models.Coordinate{}, err
	}
	s.countGeocode("success")

	// Reports show the postal code: "Boston, MA"
	if abbr, ok := geocoding.Abbreviation(state); ok {
		state = abbr
	}
	return city, state, coord, nil
}

func (s *Service) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReportsTotal.WithLabelValues(outcome(err)).Inc()
	s.metrics.ReportDuration.Observe(s.clock.Since(start).Seconds())
}

func (s *Service) countGeocode(result string) {
	if s.metrics != nil {
		s.metrics.GeocodeRequests.WithLabelValues(result).Inc()
	}
}

func (s *Service) countStation(category models.StationCategory) {
	if s.metrics != nil {
		s.metrics.StationResolution.WithLabelValues(category.String()).Inc()
	}
}

func (s *Service) countFetch(product, result string) {
	if s.metrics != nil {
		s.metrics.NOAAFetches.WithLabelValues(product, result).Inc()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, geocoding.ErrUnrecognizedLocation):
		return "bad_location"
	case errors.Is(err, geocoding.ErrGeocode):
		return "geocode_error"
	case errors.Is(err, stations.ErrNoStationFound):
		return "no_station"
	case errors.Is(err, noaa.ErrTideService):
		return "tide_error"
	default:
		return "error"
	}
}
