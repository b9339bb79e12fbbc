package main

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/ngmaloney/divebot/internal/dive"
	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/observability"
	"github.com/ngmaloney/divebot/internal/stations"
)

// loadStore loads the station snapshots. A missing or malformed catalog is a
// startup failure.
func (a *app) loadStore(metrics *observability.Metrics) (*stations.Store, error) {
	store := stations.NewStore(a.cfg.StationsDir, a.logger, metrics)
	if _, err := store.Reload(); err != nil {
		return nil, fmt.Errorf("%w (run 'divebot refresh' to download station snapshots)", err)
	}
	return store, nil
}

// diveService wires the report pipeline against the configured endpoints
func (a *app) diveService(store *stations.Store, logger *slog.Logger, metrics *observability.Metrics) *dive.Service {
	clock := clockwork.NewRealClock()
	return dive.NewService(dive.Config{
		Geocoder:    geocoding.NewGeocoder(a.cfg.GeocoderURL, a.cfg.GeocoderUserAgent),
		Catalog:     store,
		Tides:       noaa.NewTideClient(a.cfg.DataGetterURL, a.cfg.Location, clock, logger),
		Weather:     noaa.NewWeatherClient(a.cfg.WeatherURL, a.cfg.GeocoderUserAgent),
		ThresholdKm: a.cfg.ThresholdKm,
		Location:    a.cfg.Location,
		Clock:       clock,
		Logger:      logger,
		Metrics:     metrics,
	})
}
