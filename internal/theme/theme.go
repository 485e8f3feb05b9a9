// Package theme provides the Lip Gloss color palette for the control deck.
// It is a leaf package with no internal imports to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Log category colors.
var (
	ColorOutbound = lipgloss.Color("#3b82f6")
	ColorInbound  = lipgloss.Color("#22c55e")
	ColorSystem   = lipgloss.Color("#d97706")
)

// Gauge thresholds.
var (
	ColorRangeSafe = lipgloss.Color("#22c55e") // plenty of clearance
	ColorRangeNear = lipgloss.Color("#d97706") // closing in
	ColorRangeHit  = lipgloss.Color("#dc2626") // about to touch
)

// Mechanism/state colors.
var (
	ColorRollerOn = lipgloss.Color("#a855f7")
	ColorAuto     = lipgloss.Color("#06b6d4")
	ColorManual   = lipgloss.Color("#9ca3af")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorAccent  = lipgloss.Color("#f59e0b")
)

// Panel returns the shared bordered panel style.
func Panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
}

// Title renders a panel heading.
func Title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorBright).Render(s)
}
