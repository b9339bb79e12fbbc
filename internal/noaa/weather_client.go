package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ngmaloney/divebot/internal/models"
)

// DefaultWeatherURL is the NWS API root
const DefaultWeatherURL = "https://api.weather.gov"

// NOAAWeatherClient implements WeatherClient using the NWS API
type NOAAWeatherClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewWeatherClient creates a new NWS weather client.
// api.weather.gov rejects requests without a User-Agent.
func NewWeatherClient(baseURL, userAgent string) *NOAAWeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	if userAgent == "" {
		userAgent = "DiveBot/1.0"
	}
	return &NOAAWeatherClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: userAgent,
	}
}

// FetchForecast resolves the forecast office for a coordinate and returns
// the first (current) forecast period.
func (c *NOAAWeatherClient) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.Forecast, error) {
	forecastURL, err := c.getForecastURL(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("failed to get grid point: %w", err)
	}

	var forecastResp forecastResponse
	if err := c.getJSON(ctx, forecastURL, &forecastResp); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	if len(forecastResp.Properties.Periods) == 0 {
		return nil, fmt.Errorf("forecast has no periods")
	}

	period := forecastResp.Properties.Periods[0]
	return &models.Forecast{
		PeriodName:      period.Name,
		ShortForecast:   period.ShortForecast,
		Temperature:     period.Temperature,
		TemperatureUnit: period.TemperatureUnit,
		WindSpeed:       period.WindSpeed,
		WindDirection:   period.WindDirection,
	}, nil
}

// getForecastURL looks up the NWS grid point for a lat/lon
func (c *NOAAWeatherClient) getForecastURL(ctx context.Context, coord models.Coordinate) (string, error) {
	pointURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, coord.Latitude, coord.Longitude)

	var pointResp pointResponse
	if err := c.getJSON(ctx, pointURL, &pointResp); err != nil {
		return "", err
	}

	if pointResp.Properties.Forecast != "" {
		return pointResp.Properties.Forecast, nil
	}
	if pointResp.Properties.GridID == "" {
		return "", fmt.Errorf("no forecast office for %.4f,%.4f", coord.Latitude, coord.Longitude)
	}

	// Older responses omit the forecast link; build it from the grid
	return fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast",
		c.baseURL, pointResp.Properties.GridID, pointResp.Properties.GridX, pointResp.Properties.GridY), nil
}

func (c *NOAAWeatherClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Internal types for NWS API responses

type pointResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
		GridID   string `json:"gridId"`
		GridX    int    `json:"gridX"`
		GridY    int    `json:"gridY"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Name            string `json:"name"`
			Temperature     int    `json:"temperature"`
			TemperatureUnit string `json:"temperatureUnit"`
			WindSpeed       string `json:"windSpeed"`
			WindDirection   string `json:"windDirection"`
			ShortForecast   string `json:"shortForecast"`
		} `json:"periods"`
	} `json:"properties"`
}
