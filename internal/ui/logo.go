package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"meater/internal/display"
)

// ASCII Art Logo
const asciiLogo = `
  __  __ ___   _ _____ ___ ___
 |  \/  | __| /_\_   _| __| _ \
 | |\/| | _| / _ \| | | _||   /
 |_|  |_|___/_/ \_\_| |___|_|_\
`

var logoCache string

// GenerateLogo returns the logo shaded from cold to done, one band per line.
func GenerateLogo() string {
	if logoCache != "" {
		return logoCache
	}

	lines := strings.Split(strings.Trim(asciiLogo, "\n"), "\n")
	shades := []display.Band{display.BandRed, display.BandOrange, display.BandYellow, display.BandGreen}

	coloredLines := make([]string, 0, len(lines))
	for i, line := range lines {
		b := shades[min(i, len(shades)-1)]
		style := lipgloss.NewStyle().Foreground(BandColor(b)).Bold(true)
		coloredLines = append(coloredLines, style.Render(line))
	}

	logoCache = strings.Join(coloredLines, "\n")
	return logoCache
}
