package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTabs draws a single-select tab row. Tabs that would overflow width
// are dropped from the end, except the active one which is always shown.
func renderTabs(labels []string, active int, width int, trailing string) string {
	sep := tabSeparatorStyle.Render(" · ")

	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = tabActiveStyle.Render(l)
		} else {
			parts[i] = tabInactiveStyle.Render(l)
		}
	}

	start := 0
	for start < active {
		w := lipgloss.Width(strings.Join(parts[start:active+1], sep)) + lipgloss.Width(trailing) + 3
		if w <= width {
			break
		}
		start++
	}

	var row string
	for i, part := range parts[start:] {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate)+lipgloss.Width(trailing)+3 > width && row != "" {
			break
		}
		row = candidate
	}
	if start > 0 {
		row = tabSeparatorStyle.Render("‹ ") + row
	}
	if trailing != "" {
		row += "  " + trailing
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return 0
}
