// Package help renders the key-binding overlay from markdown.
package help

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/theme"
)

const helpMarkdown = `# ARECAbot control deck

## Driving
* **w / s / a / d** — forward, back, left, right (hold to keep moving)
* **space** — stop

## Mechanisms
* **m** — toggle auto/manual mode
* **r** — toggle the roller
* **t** — request a status report

## Speed
* **tab** — select left/right wheel
* **+ / -** — adjust the selected wheel speed

## Other
* **j / k** — scroll the event log
* **?** — toggle this help
* **q** — quit

Commands go over the live link when it is up, otherwise each one is sent
as a single HTTP request. Either way the event log shows what happened.
`

// Model caches the rendered help text.
type Model struct {
	rendered string
}

// New renders the overlay once; rendering failures fall back to the raw
// markdown.
func New() Model {
	out, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		out = helpMarkdown
	}
	return Model{rendered: out}
}

// View returns the overlay panel.
func (m Model) View(width int) string {
	if width < 40 {
		width = 40
	}
	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorAccent).
		Render(m.rendered)
}
