package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/divebot/internal/dive"
)

// Reporter builds the report and forecast for a location
type Reporter interface {
	Report(ctx context.Context, location string) (dive.Result, error)
	Weather(ctx context.Context, location string) (string, error)
}

// requestTimeout bounds a single report or forecast lookup
const requestTimeout = 45 * time.Second

// Message types for async operations

// reportFetchedMsg is sent when the tide report has been built
type reportFetchedMsg struct {
	location string
	result   dive.Result
	err      error
}

// weatherFetchedMsg is sent when the forecast has been fetched
type weatherFetchedMsg struct {
	location string
	text     string
	err      error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

func fetchReport(r Reporter, location string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := r.Report(ctx, location)
		return reportFetchedMsg{location: location, result: res, err: err}
	}
}

func fetchWeather(r Reporter, location string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		text, err := r.Weather(ctx, location)
		return weatherFetchedMsg{location: location, text: text, err: err}
	}
}
