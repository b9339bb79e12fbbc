package models

import "time"

// TideKind represents whether a tide is high or low
type TideKind string

const (
	TideHigh TideKind = "H"
	TideLow  TideKind = "L"
)

// Label returns the display name used in reports ("High" or "Low")
func (k TideKind) Label() string {
	if k == TideHigh {
		return "High"
	}
	return "Low"
}

// TidePrediction represents a single predicted high or low tide
type TidePrediction struct {
	Time      time.Time
	Kind      TideKind
	LevelFeet float64 // feet relative to MLLW (Mean Lower Low Water)
}

// WaterTemperature is the latest water temperature reading for a station.
// A nil *WaterTemperature means no reading was available.
type WaterTemperature struct {
	Fahrenheit float64
}

// PredictionsOn returns the predictions whose calendar date, in day's location,
// matches day. Input order is preserved.
func PredictionsOn(predictions []TidePrediction, day time.Time) []TidePrediction {
	y, m, d := day.Date()
	var out []TidePrediction
	for _, p := range predictions {
		py, pm, pd := p.Time.In(day.Location()).Date()
		if py == y && pm == m && pd == d {
			out = append(out, p)
		}
	}
	return out
}

// NextAfter returns the first prediction strictly after t in input order.
func NextAfter(predictions []TidePrediction, t time.Time) (TidePrediction, bool) {
	for _, p := range predictions {
		if p.Time.After(t) {
			return p, true
		}
	}
	return TidePrediction{}, false
}
