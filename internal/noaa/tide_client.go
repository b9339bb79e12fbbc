package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ngmaloney/divebot/internal/models"
)

// DefaultDataGetterURL is the CO-OPS data API endpoint
const DefaultDataGetterURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

// ErrTideService is returned when tide predictions cannot be fetched or parsed
var ErrTideService = errors.New("tide service error")

const predictionLayout = "2006-01-02 15:04"

// NOAATideClient implements TideClient using the NOAA CO-OPS API
type NOAATideClient struct {
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	location   *time.Location // fallback for stations without a known zone
	logger     *slog.Logger
}

// NewTideClient creates a new NOAA tide client.
// An empty baseURL selects DefaultDataGetterURL.
func NewTideClient(baseURL string, loc *time.Location, clock clockwork.Clock, logger *slog.Logger) *NOAATideClient {
	if baseURL == "" {
		baseURL = DefaultDataGetterURL
	}
	return &NOAATideClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clock:    clock,
		location: loc,
		logger:   logger,
	}
}

// FetchTidePredictions retrieves high/low tide predictions for today and tomorrow.
// NOAA returns lst_ldt timestamps in station-local time, so they are parsed in
// the station's zone. Any non-success response or malformed record fails the
// whole call.
func (c *NOAATideClient) FetchTidePredictions(ctx context.Context, station models.Station) ([]models.TidePrediction, error) {
	stationID := station.ID
	zone := station.TimeZone
	if zone == nil {
		zone = c.location
	}
	now := c.clock.Now().In(zone)

	params := url.Values{}
	params.Add("begin_date", now.Format("20060102"))
	params.Add("end_date", now.AddDate(0, 0, 1).Format("20060102"))
	params.Add("station", stationID)
	params.Add("product", "predictions")
	params.Add("datum", "MLLW")        // Mean Lower Low Water
	params.Add("units", "english")     // Feet
	params.Add("time_zone", "lst_ldt") // Local standard/daylight time
	params.Add("interval", "hilo")     // High and low tides only
	params.Add("format", "json")

	var tideResp tideResponse
	if err := c.get(ctx, params, &tideResp); err != nil {
		return nil, fmt.Errorf("%w: station %s: %v", ErrTideService, stationID, err)
	}
	if tideResp.Error != nil {
		return nil, fmt.Errorf("%w: station %s: %s", ErrTideService, stationID, tideResp.Error.Message)
	}
	if tideResp.Predictions == nil {
		return nil, fmt.Errorf("%w: station %s: response has no predictions", ErrTideService, stationID)
	}

	predictions := make([]models.TidePrediction, 0, len(tideResp.Predictions))
	for i, pred := range tideResp.Predictions {
		p, err := parsePrediction(pred, zone)
		if err != nil {
			return nil, fmt.Errorf("%w: station %s prediction %d: %v", ErrTideService, stationID, i, err)
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

func parsePrediction(pred predictionRecord, zone *time.Location) (models.TidePrediction, error) {
	if pred.Time == "" || pred.Type == "" || pred.Value == "" {
		return models.TidePrediction{}, errors.New("missing t, type or v")
	}

	eventTime, err := time.ParseInLocation(predictionLayout, pred.Time, zone)
	if err != nil {
		return models.TidePrediction{}, fmt.Errorf("invalid time %q", pred.Time)
	}

	var kind models.TideKind
	switch strings.ToUpper(pred.Type) {
	case "H":
		kind = models.TideHigh
	case "L":
		kind = models.TideLow
	default:
		return models.TidePrediction{}, fmt.Errorf("invalid type %q", pred.Type)
	}

	// NOAA returns the level as a string
	level, err := strconv.ParseFloat(pred.Value, 64)
	if err != nil {
		return models.TidePrediction{}, fmt.Errorf("invalid level %q", pred.Value)
	}

	return models.TidePrediction{Time: eventTime, Kind: kind, LevelFeet: level}, nil
}

// FetchWaterTemperature retrieves today's latest water temperature.
// Failures are logged and reported as nil so the tide report can proceed.
func (c *NOAATideClient) FetchWaterTemperature(ctx context.Context, stationID string) *models.WaterTemperature {
	params := url.Values{}
	params.Add("date", "today")
	params.Add("station", stationID)
	params.Add("product", "water_temperature")
	params.Add("units", "english")
	params.Add("time_zone", "lst_ldt")
	params.Add("format", "json")

	var obsResp observationResponse
	if err := c.get(ctx, params, &obsResp); err != nil {
		c.logger.Warn("water temperature unavailable", "station", stationID, "error", err)
		return nil
	}
	if obsResp.Error != nil {
		c.logger.Warn("water temperature unavailable", "station", stationID, "error", obsResp.Error.Message)
		return nil
	}

	// Most recent observation with a value
	for i := len(obsResp.Data) - 1; i >= 0; i-- {
		if obsResp.Data[i].Value == "" {
			continue
		}
		val, err := strconv.ParseFloat(obsResp.Data[i].Value, 64)
		if err != nil {
			c.logger.Warn("water temperature unparseable", "station", stationID, "value", obsResp.Data[i].Value)
			return nil
		}
		return &models.WaterTemperature{Fahrenheit: val}
	}

	c.logger.Warn("water temperature unavailable", "station", stationID, "error", "no observations")
	return nil
}

func (c *NOAATideClient) get(ctx context.Context, params url.Values, out any) error {
	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", params.Get("product"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Internal types for NOAA CO-OPS API responses

type apiError struct {
	Message string `json:"message"`
}

type predictionRecord struct {
	Time  string `json:"t"`
	Type  string `json:"type"` // "H" or "L"
	Value string `json:"v"`    // NOAA returns this as string
}

type tideResponse struct {
	Predictions []predictionRecord `json:"predictions"`
	Error       *apiError          `json:"error"`
}

type observationResponse struct {
	Data []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
	Error *apiError `json:"error"`
}
