// Package telemetry renders the live sensor panel: range gauge, climate
// readings, drive state, and position.
package telemetry

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/client"
	"github.com/samartha-hm/ARECAbot/internal/theme"
)

const (
	gaugeFPS = 30
	// gaugeFullScale is the ultrasonic reading that fills the bar, in cm.
	gaugeFullScale = 400.0
)

// Model holds the merged snapshot plus the spring state smoothing the
// range gauge between readings.
type Model struct {
	Snapshot client.Snapshot
	Width    int

	spring   harmonica.Spring
	gaugePos float64
	gaugeVel float64
}

// New creates the telemetry panel.
func New() Model {
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(gaugeFPS), 6.0, 0.8),
	}
}

// Apply merges one reconciled telemetry update into the snapshot.
func (m *Model) Apply(update client.Snapshot) {
	m.Snapshot.Merge(update)
}

// Animate advances the gauge spring one frame toward the latest reading.
func (m *Model) Animate() {
	target := 0.0
	if m.Snapshot.Ultrasonic != nil {
		target = *m.Snapshot.Ultrasonic
	}
	m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, target)
}

// View renders the panel.
func (m Model) View() string {
	width := m.Width
	if width < 30 {
		width = 30
	}
	inner := width - 4

	var b strings.Builder
	b.WriteString(theme.Title("TELEMETRY"))
	b.WriteString("\n")
	b.WriteString(m.rangeGauge(inner))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		dim.Render("temp"), numberOrDash(m.Snapshot.Temperature, "%.1f°C"),
		dim.Render("pressure"), numberOrDash(m.Snapshot.Pressure, "%.1f hPa")))
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		dim.Render("state"), textOrDash(m.Snapshot.State),
		dim.Render("dir"), textOrDash(m.Snapshot.Direction)))
	b.WriteString(fmt.Sprintf("%s %s",
		dim.Render("pos"), positionOrDash(m.Snapshot.Position)))

	return theme.Panel(width).Render(b.String())
}

// rangeGauge draws the spring-smoothed ultrasonic bar.
func (m Model) rangeGauge(width int) string {
	label := "range  --"
	if m.Snapshot.Ultrasonic != nil {
		label = fmt.Sprintf("range %3.0f cm", *m.Snapshot.Ultrasonic)
	}

	barWidth := width - len(label) - 2
	if barWidth < 8 {
		barWidth = 8
	}

	frac := m.gaugePos / gaugeFullScale
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(barWidth))

	color := theme.ColorRangeSafe
	switch {
	case m.gaugePos < 50:
		color = theme.ColorRangeHit
	case m.gaugePos < 120:
		color = theme.ColorRangeNear
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Repeat("░", barWidth-filled))
	return label + " " + bar
}

func numberOrDash(v *float64, format string) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf(format, *v)
}

func textOrDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

func positionOrDash(p *client.Position) string {
	if p == nil {
		return "--"
	}
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
