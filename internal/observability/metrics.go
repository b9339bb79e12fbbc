package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the report pipeline.
type Metrics struct {
	ReportsTotal   *prometheus.CounterVec   // labels: outcome={success,geocode_error,no_station,tide_error,bad_location,error}
	ReportDuration prometheus.Histogram

	GeocodeRequests   *prometheus.CounterVec // labels: outcome={success,error}
	StationResolution *prometheus.CounterVec // labels: category={primary_oceanographic,general}
	NOAAFetches       *prometheus.CounterVec // labels: product={predictions,water_temperature,forecast}, outcome={success,error}

	CatalogStations *prometheus.GaugeVec // labels: category
	CatalogReloads  *prometheus.CounterVec // labels: outcome={success,error}

	GuideRequests prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsTotal,
		m.ReportDuration,
		m.GeocodeRequests,
		m.StationResolution,
		m.NOAAFetches,
		m.CatalogStations,
		m.CatalogReloads,
		m.GuideRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "reports_total",
			Help:      "Tide reports requested, by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "divebot",
			Name:      "report_duration_seconds",
			Help:      "End-to-end duration of a tide report (geocode through format).",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		StationResolution: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "station_resolutions_total",
			Help:      "Resolved stations by catalog partition.",
		}, []string{"category"}),
		NOAAFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "noaa_fetches_total",
			Help:      "NOAA data requests by product and outcome.",
		}, []string{"product", "outcome"}),
		CatalogStations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "divebot",
			Name:      "catalog_stations",
			Help:      "Stations in the loaded catalog by partition.",
		}, []string{"category"}),
		CatalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "catalog_reloads_total",
			Help:      "Station catalog reloads by outcome.",
		}, []string{"outcome"}),
		GuideRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "divebot",
			Name:      "guide_requests_total",
			Help:      "Guided dive requests created.",
		}),
	}
}
