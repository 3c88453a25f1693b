package ui

import (
	"github.com/charmbracelet/lipgloss"

	"meater/internal/display"
)

// This file centralizes the lipgloss styles used across the TUI.

// bandColors is the internal temperature palette, coldest first.
var bandColors = [...]lipgloss.Color{
	display.BandRed:        "#FF2233",
	display.BandRedOrange:  "#FF5F00",
	display.BandOrange:     "#FF9933",
	display.BandAmber:      "#FFCC33",
	display.BandYellow:     "#FFFF33",
	display.BandLightGreen: "#B2FF66",
	display.BandGreen:      "#66FF66",
}

// BandColor returns the palette colour for b.
func BandColor(b display.Band) lipgloss.Color {
	if int(b) >= len(bandColors) {
		return bandColors[display.BandRed]
	}
	return bandColors[b]
}

func bandStyle(b display.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandColor(b)).Bold(true)
}

var (
	// Panels
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F00")).
			Padding(1, 2)

	// Headers and Footers
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#B33A00")). // Brand Color
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	// Readings
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cookInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Light purple
			Bold(true).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
)
