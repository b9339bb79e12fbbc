package report

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/divebot/internal/models"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestFormatReport_Boston(t *testing.T) {
	loc := eastern(t)
	// 04:00 EDT
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 6, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 9.8},
		{Time: time.Date(2024, 6, 1, 13, 30, 0, 0, loc), Kind: models.TideLow, LevelFeet: 0.4},
	}

	got := FormatReport(preds, &models.WaterTemperature{Fahrenheit: 58.2}, "Boston", "MA", now, loc)

	want := strings.Join([]string{
		"DiveBot Weather Report for Boston, MA as of 06/01/2024 at 04:00 AM",
		"Next Tide: High at 06:00 AM with a level of 9.8ft",
		"Water Temperature: 58.2°F",
		"Today's Tides:",
		"- High at 06:00 AM with a level of 9.8ft",
		"- Low at 01:30 PM with a level of 0.4ft",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatReport_NextTideIsFirstStrictlyAfterNow(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 6, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 9.8},
		{Time: now, Kind: models.TideLow, LevelFeet: 1},
		{Time: time.Date(2024, 6, 1, 18, 15, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 10.1},
		{Time: time.Date(2024, 6, 1, 23, 50, 0, 0, loc), Kind: models.TideLow, LevelFeet: -0.3},
	}

	got := FormatReport(preds, nil, "Boston", "MA", now, loc)

	assert.Contains(t, got, "Next Tide: High at 06:15 PM with a level of 10.1ft")
	assert.Equal(t, 1, strings.Count(got, "Next Tide:"))
}

func TestFormatReport_NoTemperature(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 6, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 9.8},
	}

	got := FormatReport(preds, nil, "Boston", "MA", now, loc)

	assert.NotContains(t, got, "Water Temperature")
	assert.Contains(t, got, "Next Tide: High at 06:00 AM with a level of 9.8ft")
	assert.Contains(t, got, "- High at 06:00 AM with a level of 9.8ft")
}

func TestFormatReport_NoUpcomingTide(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2024, 6, 1, 23, 0, 0, 0, loc)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 6, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 9.8},
	}

	got := FormatReport(preds, nil, "Boston", "MA", now, loc)

	assert.NotContains(t, got, "Next Tide:")
	assert.Contains(t, got, "- High at 06:00 AM")
}

func TestFormatReport_EmptyPredictions(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)

	got := FormatReport(nil, nil, "Key Largo", "FL", now, loc)

	assert.Equal(t, "DiveBot Weather Report for Key Largo, FL as of 06/01/2024 at 12:00 PM\nToday's Tides:", got)
}

func TestFormatReport_TodayFilterKeepsInputOrder(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, loc)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 18, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 10},
		{Time: time.Date(2024, 6, 2, 0, 30, 0, 0, loc), Kind: models.TideLow, LevelFeet: 0.6},
		{Time: time.Date(2024, 6, 1, 7, 0, 0, 0, loc), Kind: models.TideLow, LevelFeet: 0.2},
		{Time: time.Date(2024, 5, 31, 23, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 9},
	}

	got := FormatReport(preds, nil, "Boston", "MA", now, loc)

	lines := strings.Split(got, "\n")
	idx := -1
	for i, l := range lines {
		if l == "Today's Tides:" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, []string{
		"- High at 06:00 PM with a level of 10ft",
		"- Low at 07:00 AM with a level of 0.2ft",
	}, lines[idx+1:])
}

func TestFormatReport_TodayUsesDisplayZoneDate(t *testing.T) {
	loc := eastern(t)
	// 2024-06-02 01:00 UTC is still June 1 in New York
	now := time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)
	preds := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 18, 0, 0, 0, loc), Kind: models.TideHigh, LevelFeet: 10},
		{Time: time.Date(2024, 6, 2, 0, 30, 0, 0, loc), Kind: models.TideLow, LevelFeet: 0.6},
	}

	got := FormatReport(preds, nil, "Boston", "MA", now, loc)

	assert.Contains(t, got, "as of 06/01/2024 at 09:00 PM")
	assert.Contains(t, got, "- High at 06:00 PM with a level of 10ft")
	assert.NotContains(t, got, "- Low at 12:30 AM")
	assert.Contains(t, got, "Next Tide: Low at 12:30 AM with a level of 0.6ft")
}

func TestFormatForecast(t *testing.T) {
	got := FormatForecast("Boston, MA", &models.Forecast{
		PeriodName:      "This Afternoon",
		ShortForecast:   "Partly Cloudy",
		Temperature:     72,
		TemperatureUnit: "F",
		WindSpeed:       "10 to 15 mph",
		WindDirection:   "NW",
	})

	want := "Weather for Boston, MA:\nCondition: Partly Cloudy\nAir Temperature: 72°F\nWind: 10 to 15 mph from NW"
	assert.Equal(t, want, got)
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		9.8:  "9.8",
		0.4:  "0.4",
		10:   "10",
		-0.2: "-0.2",
		58.2: "58.2",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in))
	}
}

func TestFormatNumber_NegativeZero(t *testing.T) {
	// NOAA reports slack levels as "-0.000"
	level, err := strconv.ParseFloat("-0.000", 64)
	require.NoError(t, err)
	require.True(t, math.Signbit(level))

	assert.Equal(t, "0", formatNumber(level))

	loc := eastern(t)
	now := time.Date(2024, 6, 1, 5, 0, 0, 0, loc)
	predictions := []models.TidePrediction{
		{Time: time.Date(2024, 6, 1, 7, 15, 0, 0, loc), Kind: models.TideLow, LevelFeet: level},
	}
	text := FormatReport(predictions, nil, "Boston", "MA", now, loc)
	assert.Contains(t, text, "Next Tide: Low at 07:15 AM with a level of 0ft")
	assert.NotContains(t, text, "-0ft")
}
