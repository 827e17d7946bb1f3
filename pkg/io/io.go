// Package io reads and writes puzzle definitions and solutions.
//
// Instances travel as JSON or TOML documents with the same field layout as
// puzzle.Definition, except that shapes and cells are written as [row, col]
// pairs for readability. Tiles may omit color and shape entirely when their
// name matches the standard inventory, in which case the standard piece is
// substituted.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	apperrors "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/errors"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// instanceDoc is the wire layout shared by the JSON and TOML formats.
type instanceDoc struct {
	Width   int         `json:"width" toml:"width"`
	Height  int         `json:"height" toml:"height"`
	Holes   [][2]int    `json:"holes,omitempty" toml:"holes,omitempty"`
	Markers []markerDoc `json:"markers,omitempty" toml:"markers,omitempty"`
	Tiles   []tileDoc   `json:"tiles" toml:"tiles"`
}

type markerDoc struct {
	Row   int    `json:"row" toml:"row"`
	Col   int    `json:"col" toml:"col"`
	Color string `json:"color" toml:"color"`
}

type tileDoc struct {
	Name  string   `json:"name" toml:"name"`
	Color string   `json:"color,omitempty" toml:"color,omitempty"`
	Cells [][2]int `json:"cells,omitempty" toml:"cells,omitempty"`
	Count *int     `json:"count,omitempty" toml:"count,omitempty"`
}

// ReadInstanceFile reads a definition from path, choosing the format by
// extension: ".toml" is TOML, everything else is JSON.
func ReadInstanceFile(path string) (puzzle.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return puzzle.Definition{}, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

// ReadJSON decodes a JSON instance document from r.
func ReadJSON(r io.Reader) (puzzle.Definition, error) {
	var doc instanceDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return puzzle.Definition{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode JSON instance")
	}
	return doc.definition()
}

// ReadTOML decodes a TOML instance document from r.
func ReadTOML(r io.Reader) (puzzle.Definition, error) {
	var doc instanceDoc
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return puzzle.Definition{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode TOML instance")
	}
	return doc.definition()
}

// WriteJSON writes the definition as an indented JSON document.
func WriteJSON(w io.Writer, def puzzle.Definition) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docFromDefinition(def))
}

// WriteTOML writes the definition as a TOML document.
func WriteTOML(w io.Writer, def puzzle.Definition) error {
	return toml.NewEncoder(w).Encode(docFromDefinition(def))
}

// solutionDoc is the JSON layout for solved coverings.
type solutionDoc struct {
	Moves      int               `json:"moves"`
	Placements []board.Placement `json:"placements"`
}

// WriteSolutionJSON writes a solved placement sequence as JSON.
func WriteSolutionJSON(w io.Writer, sol *solver.Solution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(solutionDoc{Moves: sol.Moves(), Placements: sol.Placements})
}

// ReadSolutionJSON decodes a solution previously written by WriteSolutionJSON.
func ReadSolutionJSON(r io.Reader) (*solver.Solution, error) {
	var doc solutionDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode JSON solution")
	}
	return &solver.Solution{Placements: doc.Placements}, nil
}

func (doc instanceDoc) definition() (puzzle.Definition, error) {
	def := puzzle.Definition{Width: doc.Width, Height: doc.Height}
	for _, h := range doc.Holes {
		def.Holes = append(def.Holes, geom.Cell{Row: h[0], Col: h[1]})
	}
	for _, m := range doc.Markers {
		def.Markers = append(def.Markers, board.Marker{
			Cell:  geom.Cell{Row: m.Row, Col: m.Col},
			Color: m.Color,
		})
	}
	for _, td := range doc.Tiles {
		t, err := td.tile()
		if err != nil {
			return puzzle.Definition{}, err
		}
		def.Tiles = append(def.Tiles, t)
	}
	return def, nil
}

func (td tileDoc) tile() (tile.Tile, error) {
	if len(td.Cells) == 0 {
		// Shorthand: a bare name pulls the piece from the standard inventory.
		std, ok := tile.ByName(td.Name)
		if !ok {
			return tile.Tile{}, apperrors.New(apperrors.ErrCodeInvalidTile,
				"tile %q has no cells and is not a standard piece", td.Name)
		}
		if td.Color != "" {
			std.Color = td.Color
		}
		if td.Count != nil {
			std.Count = *td.Count
		}
		return std, nil
	}

	cells := make([]geom.Cell, len(td.Cells))
	for i, c := range td.Cells {
		cells[i] = geom.Cell{Row: c[0], Col: c[1]}
	}
	t := tile.New(td.Name, td.Color, cells...)
	if td.Count != nil {
		t.Count = *td.Count
	}
	return t, nil
}

func docFromDefinition(def puzzle.Definition) instanceDoc {
	doc := instanceDoc{Width: def.Width, Height: def.Height}
	for _, h := range def.Holes {
		doc.Holes = append(doc.Holes, [2]int{h.Row, h.Col})
	}
	for _, m := range def.Markers {
		doc.Markers = append(doc.Markers, markerDoc{Row: m.Cell.Row, Col: m.Cell.Col, Color: m.Color})
	}
	for _, t := range def.Tiles {
		td := tileDoc{Name: t.Name, Color: t.Color}
		for _, c := range t.Shape {
			td.Cells = append(td.Cells, [2]int{c.Row, c.Col})
		}
		if t.Count != tile.AnyCount {
			count := t.Count
			td.Count = &count
		}
		doc.Tiles = append(doc.Tiles, td)
	}
	return doc
}
