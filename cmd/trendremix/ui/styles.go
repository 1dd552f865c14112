// Package ui provides the visual styling for the trendremix studio.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Indigo  = lipgloss.Color("#6366f1")
	Purple  = lipgloss.Color("#a855f7")
	Red     = lipgloss.Color("#ef4444")
	Green   = lipgloss.Color("#22c55e")
	Yellow  = lipgloss.Color("#eab308")
	Gray    = lipgloss.Color("#6b7280")
	DimGray = lipgloss.Color("#374151")
	White   = lipgloss.Color("#f9fafb")
)

// Styles bundles the lipgloss styles used across the studio views.
type Styles struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Badge     lipgloss.Style
	Card      lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Hint      lipgloss.Style
	Platform  lipgloss.Style
	Selected  lipgloss.Style
	Progress  lipgloss.Style
}

// DefaultStyles returns the studio style set.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Indigo),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(White).Background(Indigo).Padding(0, 2),
		TabIdle:   lipgloss.NewStyle().Foreground(Gray).Padding(0, 2),
		Badge:     lipgloss.NewStyle().Foreground(Indigo).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(Gray),
		Error:    lipgloss.NewStyle().Foreground(Red),
		Success:  lipgloss.NewStyle().Foreground(Green),
		Hint:     lipgloss.NewStyle().Foreground(Gray).Italic(true),
		Platform: lipgloss.NewStyle().Foreground(Purple),
		Selected: lipgloss.NewStyle().Foreground(Indigo).Bold(true),
		Progress: lipgloss.NewStyle().Foreground(Indigo),
	}
}
