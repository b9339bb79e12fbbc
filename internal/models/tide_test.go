package models

import (
	"testing"
	"time"
)

func TestPredictionsOn(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")

	tests := []struct {
		name        string
		predictions []TidePrediction
		day         time.Time
		want        int
	}{
		{
			name: "typical day with 2 highs and 2 lows",
			predictions: []TidePrediction{
				{Time: time.Date(2025, 11, 27, 0, 0, 0, 0, loc), Kind: TideLow, LevelFeet: 0.5},
				{Time: time.Date(2025, 11, 27, 12, 45, 0, 0, loc), Kind: TideHigh, LevelFeet: 5.2},
				{Time: time.Date(2025, 11, 27, 18, 15, 0, 0, loc), Kind: TideLow, LevelFeet: 0.8},
				{Time: time.Date(2025, 11, 28, 0, 30, 0, 0, loc), Kind: TideHigh, LevelFeet: 5.0},
			},
			day:  time.Date(2025, 11, 27, 9, 0, 0, 0, loc),
			want: 3,
		},
		{
			name: "no predictions for given day",
			predictions: []TidePrediction{
				{Time: time.Date(2025, 11, 26, 12, 0, 0, 0, loc), Kind: TideHigh, LevelFeet: 5.0},
				{Time: time.Date(2025, 11, 28, 12, 0, 0, 0, loc), Kind: TideHigh, LevelFeet: 5.0},
			},
			day:  time.Date(2025, 11, 27, 0, 0, 0, 0, loc),
			want: 0,
		},
		{
			name: "utc instant compared in day's zone",
			predictions: []TidePrediction{
				// 02:00 UTC on the 28th is still the evening of the 27th in New York.
				{Time: time.Date(2025, 11, 28, 2, 0, 0, 0, time.UTC), Kind: TideHigh, LevelFeet: 5.0},
			},
			day:  time.Date(2025, 11, 27, 0, 0, 0, 0, loc),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictionsOn(tt.predictions, tt.day)
			if len(got) != tt.want {
				t.Errorf("PredictionsOn() returned %d predictions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPredictionsOn_PreservesInputOrder(t *testing.T) {
	day := time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)
	preds := []TidePrediction{
		{Time: time.Date(2025, 11, 27, 18, 0, 0, 0, time.UTC), Kind: TideLow},
		{Time: time.Date(2025, 11, 27, 6, 0, 0, 0, time.UTC), Kind: TideHigh},
	}

	got := PredictionsOn(preds, day)
	if len(got) != 2 || got[0].Kind != TideLow || got[1].Kind != TideHigh {
		t.Errorf("PredictionsOn() reordered input: %+v", got)
	}
}

func TestNextAfter(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	preds := []TidePrediction{
		{Time: now.Add(-time.Hour), Kind: TideLow, LevelFeet: 0.1},
		{Time: now, Kind: TideHigh, LevelFeet: 1.0},
		{Time: now.Add(2 * time.Hour), Kind: TideLow, LevelFeet: 0.2},
		{Time: now.Add(time.Hour), Kind: TideHigh, LevelFeet: 9.9},
	}

	got, ok := NextAfter(preds, now)
	if !ok {
		t.Fatal("NextAfter() found nothing")
	}
	if got.LevelFeet != 0.2 {
		t.Errorf("NextAfter() = %+v, want the first entry strictly after now", got)
	}

	if _, ok := NextAfter(preds[:2], now); ok {
		t.Error("NextAfter() should not select an entry equal to now")
	}
}

func TestTideKind_Label(t *testing.T) {
	if TideHigh.Label() != "High" {
		t.Errorf("TideHigh.Label() = %q", TideHigh.Label())
	}
	if TideLow.Label() != "Low" {
		t.Errorf("TideLow.Label() = %q", TideLow.Label())
	}
	if TideHigh != "H" || TideLow != "L" {
		t.Error("tide kinds must match the CO-OPS type codes")
	}
}
