// Package controls renders the command pad: motion keys, mechanism
// toggles, and the wheel speed sliders.
package controls

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/theme"
)

// Speed slider bounds. Clamping happens here, on the UI side; the session
// layer transmits whatever it is told.
const (
	SpeedMin  = 0
	SpeedMax  = 255
	SpeedStep = 15
)

// Model holds the control pad state.
type Model struct {
	Width        int
	SpeedL       int
	SpeedR       int
	LastCmd      string
	Auto         bool
	Roller       bool
	SelectedAxis int // 0 = left wheel, 1 = right wheel
}

// New creates the control pad with stock speeds.
func New() Model {
	return Model{SpeedL: 180, SpeedR: 180}
}

// AdjustSpeed nudges the selected wheel speed by delta, clamped to range.
// It returns the resulting value.
func (m *Model) AdjustSpeed(delta int) int {
	v := &m.SpeedL
	if m.SelectedAxis == 1 {
		v = &m.SpeedR
	}
	*v = clamp(*v+delta, SpeedMin, SpeedMax)
	return *v
}

// ToggleAxis flips which wheel the speed keys adjust.
func (m *Model) ToggleAxis() {
	m.SelectedAxis = 1 - m.SelectedAxis
}

// View renders the pad.
func (m Model) View() string {
	width := m.Width
	if width < 30 {
		width = 30
	}

	dim := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	keycap := lipgloss.NewStyle().Foreground(theme.ColorAccent)

	var b strings.Builder
	b.WriteString(theme.Title("CONTROLS"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s fwd  %s back  %s left  %s right  %s stop\n",
		keycap.Render("w"), keycap.Render("s"), keycap.Render("a"), keycap.Render("d"), keycap.Render("space")))
	b.WriteString(fmt.Sprintf("  %s mode  %s roller  %s status\n",
		keycap.Render("m"), keycap.Render("r"), keycap.Render("t")))
	b.WriteString(m.speedLine(0, "SPDL", m.SpeedL))
	b.WriteString("\n")
	b.WriteString(m.speedLine(1, "SPDR", m.SpeedR))
	if m.LastCmd != "" {
		b.WriteString("\n")
		b.WriteString(dim.Render("last: " + m.LastCmd))
	}

	return theme.Panel(width).Render(b.String())
}

func (m Model) speedLine(axis int, name string, value int) string {
	marker := "  "
	if m.SelectedAxis == axis {
		marker = lipgloss.NewStyle().Foreground(theme.ColorAccent).Render("> ")
	}
	bar := speedBar(value, 20)
	return fmt.Sprintf("%s%s %s %3d", marker, name, bar, value)
}

func speedBar(value, width int) string {
	filled := value * width / SpeedMax
	return lipgloss.NewStyle().Foreground(theme.ColorOutbound).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Repeat("▱", width-filled))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
