package noaa

import (
	"context"

	"github.com/ngmaloney/divebot/internal/models"
)

// TideClient defines the interface for fetching station data from NOAA CO-OPS
type TideClient interface {
	// FetchTidePredictions retrieves high/low predictions from today through
	// tomorrow, read in the station's local zone
	FetchTidePredictions(ctx context.Context, station models.Station) ([]models.TidePrediction, error)

	// FetchWaterTemperature retrieves today's latest reading, or nil if unavailable
	FetchWaterTemperature(ctx context.Context, stationID string) *models.WaterTemperature
}

// WeatherClient defines the interface for fetching forecasts from api.weather.gov
type WeatherClient interface {
	// FetchForecast retrieves the current forecast period for a location
	FetchForecast(ctx context.Context, coord models.Coordinate) (*models.Forecast, error)
}
