package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFetcher produces the current service status listing.
type StatusFetcher func(ctx context.Context) (string, error)

// statusMsg carries a fresh status listing into the model.
type statusMsg struct {
	listing string
	err     error
}

// tickMsg triggers the next poll.
type tickMsg struct{}

// WatchModel is the Bubble Tea model for `status --watch`.
type WatchModel struct {
	Title    string
	Interval time.Duration

	fetch   StatusFetcher
	listing string
	fetched time.Time
	err     error
}

// NewWatchModel builds a watch model polling fetch every interval.
func NewWatchModel(title string, interval time.Duration, fetch StatusFetcher) WatchModel {
	return WatchModel{Title: title, Interval: interval, fetch: fetch}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.fetchCmd()
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case statusMsg:
		m.listing = msg.listing
		m.err = msg.err
		m.fetched = time.Now()
		return m, m.tickCmd()

	case tickMsg:
		return m, m.fetchCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	out := "\n" + Header(m.Title)

	if m.err != nil {
		out += "\n" + failedStyle.Render("  "+m.err.Error()) + "\n"
	} else if m.listing == "" {
		out += "\n" + dimStyle.Render("  waiting for status...") + "\n"
	} else {
		out += "\n" + indent(m.listing)
	}

	out += "\n" + dimStyle.Render("  refreshed "+m.fetched.Format("15:04:05")+" · q to quit") + "\n"
	return out
}

func (m WatchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		listing, err := m.fetch(context.Background())
		return statusMsg{listing: listing, err: err}
	}
}

func (m WatchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.Interval, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

func indent(s string) string {
	out := ""
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if i > start {
				out += "  " + s[start:i]
			}
			if i < len(s) {
				out += "\n"
			}
			start = i + 1
		}
	}
	return out
}

// RunWatch runs the watch TUI until the operator quits.
func RunWatch(model WatchModel) error {
	_, err := tea.NewProgram(model).Run()
	return err
}
