package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const cellGlyph = "█"

// PaletteColor returns the terminal color of a color table entry.
// Entries past the end of the table are black.
func PaletteColor(palette []byte, index int) lipgloss.Color {
	if index < 0 || 3*index+2 >= len(palette) {
		return lipgloss.Color("#000000")
	}
	c := colorful.Color{
		R: float64(palette[3*index]) / 255,
		G: float64(palette[3*index+1]) / 255,
		B: float64(palette[3*index+2]) / 255,
	}
	return lipgloss.Color(c.Hex())
}

// RenderGrid draws rows of color indices, one block character per cell.
// Runs of equal color share one style.
func RenderGrid(rows [][]int, palette []byte) string {
	styles := make(map[int]lipgloss.Style)
	style := func(index int) lipgloss.Style {
		s, ok := styles[index]
		if !ok {
			s = lipgloss.NewStyle().Foreground(PaletteColor(palette, index))
			styles[index] = s
		}
		return s
	}

	var b strings.Builder
	for _, row := range rows {
		for start := 0; start < len(row); {
			end := start
			for end < len(row) && row[end] == row[start] {
				end++
			}
			b.WriteString(style(row[start]).Render(strings.Repeat(cellGlyph, end-start)))
			start = end
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ColorRows maps cell states to color indices. States without an entry
// map to themselves.
func ColorRows(states [][]int, colormap map[int]int) [][]int {
	out := make([][]int, len(states))
	for y, row := range states {
		out[y] = make([]int, len(row))
		for x, v := range row {
			if c, ok := colormap[v]; ok {
				v = c
			}
			out[y][x] = v
		}
	}
	return out
}
