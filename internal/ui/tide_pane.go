package ui

import (
	"fmt"
	"strings"
)

// renderTidePane renders the tide report pane
func (m Model) renderTidePane(width int, active bool) string {
	style := paneStyle
	if active {
		style = activePaneStyle
	}

	var content strings.Builder

	// Title
	content.WriteString(titleStyle.Render("Tides"))
	content.WriteString("\n\n")

	if m.report == nil {
		content.WriteString(mutedStyle.Render("No tide data available"))
		return style.Width(width).Render(content.String())
	}

	station := m.report.Station
	content.WriteString(labelStyle.Render("Station: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s %s", station.ID, station.Name)))
	content.WriteString("\n")
	content.WriteString(mutedStyle.Render(fmt.Sprintf("%s • %.1f km away", station.Category, m.report.DistanceKm)))
	content.WriteString("\n\n")

	for _, line := range strings.Split(m.report.Text, "\n") {
		content.WriteString(styleReportLine(line))
		content.WriteString("\n")
	}

	return style.Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

// styleReportLine colors a report line by its kind
func styleReportLine(line string) string {
	switch {
	case strings.HasPrefix(line, "DiveBot Weather Report"):
		return titleStyle.Render(line)
	case strings.HasPrefix(line, "Today's Tides:"),
		strings.HasPrefix(line, "Next Tide:"),
		strings.HasPrefix(line, "Water Temperature:"):
		label, rest, _ := strings.Cut(line, ":")
		return labelStyle.Render(label+":") + valueStyle.Render(rest)
	case strings.HasPrefix(line, "- High"):
		return highTideStyle.Render(line)
	case strings.HasPrefix(line, "- Low"):
		return lowTideStyle.Render(line)
	default:
		return line
	}
}
