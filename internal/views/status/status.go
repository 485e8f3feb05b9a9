// Package status renders the top status bar of the control deck.
package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected bool
	Endpoint  string
	Auto      bool
	Roller    bool
	LastAck   string
	Width     int
}

// New creates a status bar model.
func New(endpoint string) Model {
	return Model{Endpoint: endpoint}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● " + m.Endpoint)
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ " + m.Endpoint + " (fallback)")
	}

	mode := lipgloss.NewStyle().Foreground(theme.ColorManual).Render("MANUAL")
	if m.Auto {
		mode = lipgloss.NewStyle().Foreground(theme.ColorAuto).Render("AUTO")
	}

	roller := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("roller off")
	if m.Roller {
		roller = lipgloss.NewStyle().Foreground(theme.ColorRollerOn).Render("roller on")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + mode + sep + roller
	if m.LastAck != "" {
		content += sep + lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render(
			fmt.Sprintf("ack: %s", m.LastAck))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
