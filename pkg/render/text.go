// Package render turns boards and solutions into human-readable depictions.
//
// Renderers are read-only views: they never mutate the instance or solution
// they are handed. Text writes a colored terminal grid; SVG writes a small
// standalone vector image.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
)

// Text renders a board as a terminal grid. Free cells show as dots, holes as
// solid blocks, virus markers as asterisks, and solved placements as colored
// tile initials.
type Text struct {
	// Legend appends a tile legend under the grid when a solution is shown.
	Legend bool
}

var (
	styleHole   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFree   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleMarker = lipgloss.NewStyle().Bold(true)
)

// Render implements puzzle.Renderer.
func (t Text) Render(w io.Writer, inst *puzzle.Instance, sol *solver.Solution) error {
	b := inst.Board()

	occupant := make(map[geom.Cell]string)
	if sol != nil {
		for _, p := range sol.Placements {
			for _, c := range p.Cells {
				occupant[c] = p.Tile
			}
		}
	}

	var sb strings.Builder
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.cell(inst, occupant, geom.Cell{Row: row, Col: col}))
		}
		sb.WriteByte('\n')
	}

	if t.Legend && sol != nil {
		sb.WriteByte('\n')
		for _, p := range sol.Placements {
			style := lipgloss.NewStyle()
			if tl, ok := inst.TileByName(p.Tile); ok {
				style = style.Foreground(lipgloss.Color(tl.Color))
			}
			fmt.Fprintf(&sb, "%s %s at %s\n", style.Render(initial(p.Tile)), p.Tile, p.Anchor)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t Text) cell(inst *puzzle.Instance, occupant map[geom.Cell]string, c geom.Cell) string {
	b := inst.Board()
	if b.Blocked(c) {
		return styleHole.Render("#")
	}
	if name, ok := occupant[c]; ok {
		style := lipgloss.NewStyle()
		if tl, found := inst.TileByName(name); found {
			style = style.Foreground(lipgloss.Color(tl.Color))
		}
		if _, marked := b.MarkerAt(c); marked {
			return style.Bold(true).Render(strings.ToUpper(initial(name)))
		}
		return style.Render(initial(name))
	}
	if m, ok := b.MarkerAt(c); ok {
		return styleMarker.Foreground(lipgloss.Color(m.Color)).Render("*")
	}
	return styleFree.Render(".")
}

func initial(name string) string {
	if name == "" {
		return "?"
	}
	return string([]rune(name)[0])
}
