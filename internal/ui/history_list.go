package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/divebot/internal/dive"
)

// historyItem wraps a previous report for use in a list
type historyItem struct {
	location string
	result   dive.Result
}

// FilterValue implements list.Item
func (h historyItem) FilterValue() string {
	return h.location
}

// Title implements list.DefaultItem
func (h historyItem) Title() string {
	return h.location
}

// Description implements list.DefaultItem
func (h historyItem) Description() string {
	s := h.result.Station
	return fmt.Sprintf("%s %s • %.1f km", s.ID, s.Name, h.result.DistanceKm)
}

// createHistoryList creates a list.Model from previous reports, newest first
func createHistoryList(history []historyItem, width, height int) list.Model {
	items := make([]list.Item, len(history))
	for i := range history {
		items[i] = history[len(history)-1-i]
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Recent Reports"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
