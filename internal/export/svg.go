package export

import (
	"fmt"
	"strings"
)

// MazeSVG draws a grid of color indices as rectangles, one per horizontal
// run of equal color, scaled by cellSize.
func MazeSVG(rows [][]int, palette []byte, cellSize int) string {
	if len(rows) == 0 || len(rows[0]) == 0 || cellSize < 1 {
		return ""
	}

	width := len(rows[0]) * cellSize
	height := len(rows) * cellSize

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
`, width, height, width, height)

	for y, row := range rows {
		for x := 0; x < len(row); {
			c := row[x]
			run := 1
			for x+run < len(row) && row[x+run] == c {
				run++
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x*cellSize, y*cellSize, run*cellSize, cellSize, hexColor(palette, c))
			x += run
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SizesSVG plots frame sizes as a polyline.
func SizesSVG(sizes []int, width, height int, strokeColor string) string {
	if len(sizes) < 2 {
		return ""
	}

	maxY := sizes[0]
	for _, s := range sizes {
		maxY = max(maxY, s)
	}
	if maxY == 0 {
		maxY = 1
	}
	top := float64(maxY) * 1.1
	span := float64(len(sizes) - 1)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, s := range sizes {
		x := float64(i) / span * float64(width)
		y := float64(height) - float64(s)/top*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func hexColor(palette []byte, index int) string {
	i := index * 3
	if i < 0 || i+2 >= len(palette) {
		return "#000000"
	}
	return fmt.Sprintf("#%02x%02x%02x", palette[i], palette[i+1], palette[i+2])
}
