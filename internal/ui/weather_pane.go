package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderWeatherPane renders the forecast pane
func (m Model) renderWeatherPane(width int, active bool) string {
	style := paneStyle
	if active {
		style = activePaneStyle
	}

	// Calculate content width (total width - border - padding)
	// Border: 2 chars, Padding: 4 chars = 6 total overhead
	contentWidth := width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var content strings.Builder

	// Title
	content.WriteString(titleStyle.Render("Weather"))
	content.WriteString("\n\n")

	switch {
	case m.loadingWeather:
		content.WriteString(m.spinner.View() + mutedStyle.Render(" Fetching forecast"))
	case m.weatherErr != nil:
		content.WriteString(mutedStyle.Render("Forecast unavailable"))
	case m.weather == "":
		content.WriteString(mutedStyle.Render("No weather data available"))
	default:
		wrapped := lipgloss.NewStyle().Width(contentWidth)
		lines := strings.Split(m.weather, "\n")
		for i, line := range lines {
			if i == 0 {
				// "Weather for {loc}:" header
				content.WriteString(labelStyle.Render(line))
			} else if label, rest, ok := strings.Cut(line, ":"); ok {
				content.WriteString(labelStyle.Render(label+":") + wrapped.Render(valueStyle.Render(rest)))
			} else {
				content.WriteString(wrapped.Render(line))
			}
			content.WriteString("\n")
		}
	}

	return style.Width(width).Render(strings.TrimRight(content.String(), "\n"))
}
