// Package logfeed renders the rolling event log panel.
package logfeed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/feed"
	"github.com/samartha-hm/ARECAbot/internal/theme"
)

// Model renders a feed into a fixed-height panel with scrollback.
type Model struct {
	Feed   *feed.Feed
	Width  int
	Height int
	Offset int // scroll offset from the newest entry
}

// New creates the panel over an empty feed.
func New() Model {
	return Model{Feed: feed.New(), Height: 10}
}

// Add pushes a classified line into the feed and snaps the view back to
// the newest entry.
func (m *Model) Add(line string) {
	m.Feed.Add(line)
	m.Offset = 0
}

// ScrollUp moves toward older entries.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	if max := m.Feed.Len() - 1; m.Offset > max {
		m.Offset = max
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// ScrollDown moves toward the newest entry.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// View renders the panel, newest entries on top.
func (m Model) View() string {
	width := m.Width
	if width < 30 {
		width = 30
	}
	rows := m.Height
	if rows < 3 {
		rows = 3
	}

	entries := m.Feed.Entries()
	var b strings.Builder
	b.WriteString(theme.Title("EVENTS"))

	ts := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	for i := 0; i < rows; i++ {
		b.WriteString("\n")
		idx := m.Offset + i
		if idx >= len(entries) {
			continue
		}
		e := entries[idx]
		b.WriteString(ts.Render(e.Timestamp))
		b.WriteString(" ")
		b.WriteString(badge(e.Category))
		b.WriteString(" ")
		b.WriteString(truncate(e.Message, width-18))
	}

	return theme.Panel(width).Render(b.String())
}

func badge(cat feed.Category) string {
	switch cat {
	case feed.Outbound:
		return lipgloss.NewStyle().Foreground(theme.ColorOutbound).Render("TX")
	case feed.Inbound:
		return lipgloss.NewStyle().Foreground(theme.ColorInbound).Render("RX")
	default:
		return lipgloss.NewStyle().Foreground(theme.ColorSystem).Render("--")
	}
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
