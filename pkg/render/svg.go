package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
)

const (
	svgCell    = 48.0 // cell edge in pixels
	svgPad     = 8.0
	svgHole    = "#2b2b2b"
	svgFree    = "#f0f0f0"
	svgOutline = "#555555"
)

// SVG renders a board (and optionally a solution) as a standalone SVG image.
type SVG struct{}

// Render implements puzzle.Renderer.
func (SVG) Render(w io.Writer, inst *puzzle.Instance, sol *solver.Solution) error {
	b := inst.Board()
	width := float64(b.Width())*svgCell + 2*svgPad
	height := float64(b.Height())*svgCell + 2*svgPad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)

	// Base grid: free cells and holes.
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			fill := svgFree
			if b.Blocked(geom.Cell{Row: row, Col: col}) {
				fill = svgHole
			}
			writeCell(&buf, row, col, fill, 1.0)
		}
	}

	// Solved placements on top of the grid.
	if sol != nil {
		for _, p := range sol.Placements {
			color := "#999999"
			if tl, ok := inst.TileByName(p.Tile); ok {
				color = tl.Color
			}
			for _, c := range p.Cells {
				writeCell(&buf, c.Row, c.Col, color, 0.9)
			}
		}
	}

	// Virus markers always stay visible as circles.
	for _, m := range b.Markers() {
		cx := svgPad + (float64(m.Cell.Col)+0.5)*svgCell
		cy := svgPad + (float64(m.Cell.Row)+0.5)*svgCell
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			cx, cy, svgCell*0.22, m.Color, svgOutline)
	}

	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeCell(buf *bytes.Buffer, row, col int, fill string, opacity float64) {
	x := svgPad + float64(col)*svgCell
	y := svgPad + float64(row)*svgCell
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, svgCell, svgCell, fill, opacity, svgOutline)
}
