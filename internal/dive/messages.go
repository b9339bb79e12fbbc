package dive

import (
	"errors"
	"fmt"

	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/stations"
)

// UserMessage maps a pipeline error to the text shown to the requester
func UserMessage(err error, location string) string {
	switch {
	case errors.Is(err, geocoding.ErrUnrecognizedLocation), errors.Is(err, geocoding.ErrGeocode):
		return fmt.Sprintf("Couldn't find the location: %s. Please ensure it's in the format 'City, State' or 'City State'.", location)
	case errors.Is(err, stations.ErrNoStationFound):
		return fmt.Sprintf("Couldn't find a NOAA station near %s for sea data.", location)
	case errors.Is(err, noaa.ErrTideService):
		return fmt.Sprintf("Couldn't fetch tide data for %s.", location)
	case errors.Is(err, ErrWeatherService):
		return fmt.Sprintf("Couldn't fetch weather data for %s.", location)
	default:
		return fmt.Sprintf("Something went wrong building the report for %s.", location)
	}
}
