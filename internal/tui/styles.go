package tui

import (
	"github.com/charmbracelet/lipgloss"

	"saynope/internal/theme"
)

// Styles holds the lipgloss styles for one theme mode.
type Styles struct {
	Title    lipgloss.Style
	Tagline  lipgloss.Style
	Chip     lipgloss.Style
	Active   lipgloss.Style
	Summary  lipgloss.Style
	Search   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Accent   lipgloss.Color
	Muted    lipgloss.Color
}

// NewStyles returns the palette for mode.
func NewStyles(mode theme.Mode) Styles {
	accent := lipgloss.Color("161")
	muted := lipgloss.Color("244")
	text := lipgloss.Color("235")
	if mode.IsDark() {
		accent = lipgloss.Color("205")
		muted = lipgloss.Color("245")
		text = lipgloss.Color("252")
	}

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tagline: lipgloss.NewStyle().Foreground(muted),
		Chip:    lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(accent).Padding(0, 1),
		Summary: lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Search:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(muted),
		Accent:  accent,
		Muted:   muted,
	}
}
