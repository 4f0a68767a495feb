package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display
// using the default lipgloss renderer.
func RenderScreen(s *core.Screen) string {
	return RenderScreenWith(lipgloss.DefaultRenderer(), s)
}

// RenderScreenWith converts a Screen buffer using the given renderer, so SSH
// sessions pick up the colour profile of the remote terminal.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[string]lipgloss.Style)
	plain := r.NewStyle()

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			hex := cellHex(start)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cellHex(cell) != hex {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if hex == "" {
				sb.WriteString(plain.Render(run.String()))
				continue
			}
			style, ok := styles[hex]
			if !ok {
				style = r.NewStyle().Foreground(lipgloss.Color(hex))
				styles[hex] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// cellHex returns the foreground of a cell, empty for the terminal default.
func cellHex(c core.Cell) string {
	if !c.HasColor {
		return ""
	}
	return c.Color.Hex()
}
