package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hookshot/internal/core"
)

// cellStyle builds the lipgloss style for a foreground/background pair.
// Zero-alpha colors leave the terminal default in place.
func cellStyle(fg, bg color.RGBA) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg.A > 0 {
		style = style.Foreground(lipgloss.Color(core.Hex(fg)))
	}
	if bg.A > 0 {
		style = style.Background(lipgloss.Color(core.Hex(bg)))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg.A == 0 && start.Bg.A == 0 {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
