package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"meater/internal/db"
	"meater/internal/display"
)

// StatusMarkdown describes one display state as a Markdown document.
func StatusMarkdown(s display.State) string {
	var b strings.Builder
	b.WriteString("# Meater Probe\n\n")

	if s.DeviceID != "" {
		fmt.Fprintf(&b, "Device `%s`\n\n", s.DeviceID)
	}
	if s.HasCook() {
		fmt.Fprintf(&b, "## %s\n\n", s.CookInfo)
	} else {
		b.WriteString("_No active cook_\n\n")
	}

	b.WriteString("| Reading | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Internal | **%.1f°F** (%s) |\n", s.InternalTempF, s.InternalTempBand)
	fmt.Fprintf(&b, "| Ambient | %.1f°F |\n", s.AmbientTempF)
	if s.HasCook() {
		fmt.Fprintf(&b, "| Target | %.1f°F |\n", s.TargetTempF)
		fmt.Fprintf(&b, "| Peak | %.1f°F |\n", s.PeakTempF)
		fmt.Fprintf(&b, "| Elapsed | %s |\n", s.TimeElapsed)
		fmt.Fprintf(&b, "| Remaining | %s |\n", s.TimeRemaining)
		fmt.Fprintf(&b, "| Progress | %.0f%% |\n", s.Progress*100)
	}

	if !s.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "\nUpdated %s\n", s.UpdatedAt.Local().Format(time.DateTime))
	}
	return b.String()
}

// HistoryMarkdown lists recorded readings, newest first, as a Markdown table.
func HistoryMarkdown(readings []db.Reading) string {
	if len(readings) == 0 {
		return "# Reading History\n\n_No readings recorded yet._\n"
	}

	var b strings.Builder
	b.WriteString("# Reading History\n\n")
	b.WriteString("| Time | Device | Cook | Internal | Ambient | Target |\n|---|---|---|---|---|---|\n")
	for _, r := range readings {
		cook := "-"
		if r.CookName != "" {
			cook = fmt.Sprintf("%s (%s)", r.CookName, r.CookState)
		}
		target := "-"
		if r.TargetTempC > 0 {
			target = fmt.Sprintf("%.1f°F", display.CelsiusToFahrenheit(r.TargetTempC))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.1f°F | %.1f°F | %s |\n",
			r.RecordedAt.Local().Format(time.DateTime),
			r.DeviceID,
			cook,
			display.CelsiusToFahrenheit(r.InternalTempC),
			display.CelsiusToFahrenheit(r.AmbientTempC),
			target,
		)
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal. If the renderer cannot be
// built the raw Markdown is returned.
func RenderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
