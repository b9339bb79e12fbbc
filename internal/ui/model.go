package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/divebot/internal/dive"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch  AppState = iota // Enter a "City, State" location
	StateLoading                 // Building the tide report
	StateDisplay                 // Showing the report and forecast
	StateHistory                 // Picking a previous report
	StateError                   // Error state
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneTides ActivePane = iota
	PaneWeather
)

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error

	reporter Reporter

	// Search
	searchInput textinput.Model
	searchQuery string // Last search query

	// Data
	report         *dive.Result
	weather        string
	weatherErr     error
	loadingWeather bool

	// Previous successful reports, oldest first
	history     []historyItem
	historyList list.Model

	spinner spinner.Model
}

// NewModel creates a new application model
func NewModel(reporter Reporter) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a dive site as City, State (e.g. Gloucester, MA)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:       StateSearch,
		activePane:  PaneTides,
		reporter:    reporter,
		searchInput: ti,
		spinner:     s,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateHistory {
			m.historyList.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case reportFetchedMsg:
		// Ignore results for a search the user already left
		if msg.location != m.searchQuery {
			return m, nil
		}
		if msg.err != nil {
			m.err = errors.New(dive.UserMessage(msg.err, msg.location))
			m.state = StateError
			return m, nil
		}
		res := msg.result
		m.report = &res
		m.history = appendHistory(m.history, historyItem{location: msg.location, result: res})
		m.state = StateDisplay
		return m, nil

	case weatherFetchedMsg:
		if msg.location != m.searchQuery {
			return m, nil
		}
		m.loadingWeather = false
		if msg.err != nil {
			m.weatherErr = msg.err
		} else {
			m.weather = msg.text
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == StateLoading || m.loadingWeather {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// State-specific handling
		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateHistory:
			return m.handleHistoryList(msg)

		case StateDisplay:
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "s":
				return m.resetSearch()
			case "h":
				return m.showHistory()
			case "tab":
				if m.activePane == PaneTides {
					m.activePane = PaneWeather
				} else {
					m.activePane = PaneTides
				}
			}
			return m, nil

		case StateError:
			// Any key returns to search; typed runes start the new query
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			if keyMsg.Type == tea.KeyRunes {
				m.searchInput.SetValue("")
				m.searchInput, cmd = m.searchInput.Update(keyMsg)
				return m, cmd
			}
			return m, textinput.Blink
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateHistory:
		m.historyList, cmd = m.historyList.Update(msg)
	}

	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEnter:
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		return m.startReport(query)
	case tea.KeyCtrlR:
		return m.showHistory()
	}

	// Update text input
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleHistoryList handles keyboard input in history state
func (m Model) handleHistoryList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.historyList.FilterState() != list.Filtering {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if item, ok := m.historyList.SelectedItem().(historyItem); ok {
				return m.startReport(item.location)
			}
		case tea.KeyEsc:
			return m.resetSearch()
		}
	}

	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m Model) startReport(location string) (tea.Model, tea.Cmd) {
	m.searchQuery = location
	m.err = nil
	m.state = StateLoading
	m.activePane = PaneTides
	m.report = nil
	m.weather = ""
	m.weatherErr = nil
	m.loadingWeather = true

	return m, tea.Batch(
		m.spinner.Tick,
		fetchReport(m.reporter, location),
		fetchWeather(m.reporter, location),
	)
}

func (m Model) resetSearch() (tea.Model, tea.Cmd) {
	m.state = StateSearch
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.searchQuery = ""
	m.report = nil
	m.weather = ""
	m.weatherErr = nil
	m.loadingWeather = false
	return m, textinput.Blink
}

func (m Model) showHistory() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	m.historyList = createHistoryList(m.history, m.width-4, m.height-6)
	m.state = StateHistory
	return m, nil
}

// appendHistory records item, replacing an earlier entry for the same location
func appendHistory(history []historyItem, item historyItem) []historyItem {
	out := make([]historyItem, 0, len(history)+1)
	for _, h := range history {
		if h.location != item.location {
			out = append(out, h)
		}
	}
	return append(out, item)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateHistory:
		return m.historyList.View()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return to search • Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("🤿 DiveBot")
	subtitle := mutedStyle.Render("NOAA tides, water temperature & forecast")

	// Search box with border
	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	examples := mutedStyle.Render("Examples: Gloucester, MA | Key Largo FL | Monterey, California")

	helpText := "Press Enter to search • Ctrl+C to quit"
	if len(m.history) > 0 {
		helpText = "Press Enter to search • Ctrl+R: Recent • Ctrl+C to quit"
	}
	help := helpStyle.Render(helpText)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", searchBox, "", examples, "", help)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		fmt.Sprintf("%s Building tide report for %s...", m.spinner.View(), m.searchQuery),
		"",
		helpStyle.Render("Ctrl+C: Quit"),
	)
}

// viewDisplay renders the report and forecast side by side, or stacked on
// narrow terminals
func (m Model) viewDisplay() string {
	header := successStyle.Render("✓ ") + titleStyle.Render(m.searchQuery)

	var body string
	if m.width >= 100 {
		paneWidth := m.width/2 - 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTidePane(paneWidth, m.activePane == PaneTides),
			m.renderWeatherPane(paneWidth, m.activePane == PaneWeather),
		)
	} else {
		paneWidth := m.width - 2
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderTidePane(paneWidth, m.activePane == PaneTides),
			m.renderWeatherPane(paneWidth, m.activePane == PaneWeather),
		)
	}

	help := helpStyle.Render("S: New search • H: Recent • Tab: Switch panes • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, help)
}
