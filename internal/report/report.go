// Package report renders tide and weather data as chat-ready text.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/divebot/internal/models"
)

const (
	headerLayout = "01/02/2006 at 03:04 PM"
	tideLayout   = "03:04 PM"
)

// FormatReport builds the tide report for a location.
//
// The next tide is the first prediction, in input order, strictly after now.
// Today's tides are the predictions whose date in loc equals now's date in
// loc, also in input order. A nil temperature omits the temperature line.
func FormatReport(predictions []models.TidePrediction, temperature *models.WaterTemperature, city, state string, now time.Time, loc *time.Location) string {
	local := now.In(loc)

	var b strings.Builder
	fmt.Fprintf(&b, "DiveBot Weather Report for %s, %s as of %s\n", city, state, local.Format(headerLayout))

	if next, ok := models.NextAfter(predictions, now); ok {
		fmt.Fprintf(&b, "Next Tide: %s\n", tideLine(next, loc))
	}

	if temperature != nil {
		fmt.Fprintf(&b, "Water Temperature: %s°F\n", formatNumber(temperature.Fahrenheit))
	}

	b.WriteString("Today's Tides:")
	for _, p := range models.PredictionsOn(predictions, local) {
		fmt.Fprintf(&b, "\n- %s", tideLine(p, loc))
	}

	return b.String()
}

// FormatForecast renders the current NWS forecast period for a location.
func FormatForecast(location string, forecast *models.Forecast) string {
	return fmt.Sprintf("Weather for %s:\nCondition: %s\nAir Temperature: %d°%s\nWind: %s from %s",
		location,
		forecast.ShortForecast,
		forecast.Temperature,
		forecast.TemperatureUnit,
		forecast.WindSpeed,
		forecast.WindDirection,
	)
}

func tideLine(p models.TidePrediction, loc *time.Location) string {
	return fmt.Sprintf("%s at %s with a level of %sft", p.Kind.Label(), p.Time.In(loc).Format(tideLayout), formatNumber(p.LevelFeet))
}

// formatNumber uses the shortest representation: 9.8, 0.4, 10.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
