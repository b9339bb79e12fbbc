package models

// Forecast is the current NWS forecast period for a location
type Forecast struct {
	PeriodName      string // e.g. "This Afternoon", "Tonight"
	ShortForecast   string // e.g. "Partly Cloudy"
	Temperature     int
	TemperatureUnit string // "F" or "C"
	WindSpeed       string // e.g. "10 to 15 mph"
	WindDirection   string // e.g. "NW"
}
