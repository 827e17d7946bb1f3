package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	apperrors "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/errors"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

func sampleDefinition() puzzle.Definition {
	return puzzle.Definition{
		Width:  3,
		Height: 2,
		Holes:  []geom.Cell{{Row: 1, Col: 2}},
		Markers: []board.Marker{
			{Cell: geom.Cell{Row: 0, Col: 0}, Color: "#e50000"},
		},
		Tiles: []tile.Tile{
			tile.New("a", "#e50000", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}),
			tile.New("b", "#0343df", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}, geom.Cell{Row: 1, Col: 0}),
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	def := sampleDefinition()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, def); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}

	assertSameDefinition(t, def, got)
}

func TestTOMLRoundTrip(t *testing.T) {
	def := sampleDefinition()

	var buf bytes.Buffer
	if err := WriteTOML(&buf, def); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatal(err)
	}

	assertSameDefinition(t, def, got)
}

func TestReadInstanceFileByExtension(t *testing.T) {
	dir := t.TempDir()
	def := sampleDefinition()

	jsonPath := filepath.Join(dir, "puzzle.json")
	tomlPath := filepath.Join(dir, "puzzle.toml")

	var jsonBuf, tomlBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, def); err != nil {
		t.Fatal(err)
	}
	if err := WriteTOML(&tomlBuf, def); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, jsonBuf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, tomlBuf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		got, err := ReadInstanceFile(path)
		if err != nil {
			t.Fatalf("ReadInstanceFile(%s): %v", path, err)
		}
		assertSameDefinition(t, def, got)
	}
}

func TestStandardTileShorthand(t *testing.T) {
	doc := `{"width": 1, "height": 2, "tiles": [{"name": "rouge"}]}`
	def, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	std, _ := tile.ByName("rouge")
	if def.Tiles[0].Color != std.Color {
		t.Errorf("shorthand color = %q, want standard %q", def.Tiles[0].Color, std.Color)
	}
	if !def.Tiles[0].Shape.Equal(std.Shape) {
		t.Errorf("shorthand shape = %v, want standard %v", def.Tiles[0].Shape, std.Shape)
	}
}

func TestUnknownShorthandRejected(t *testing.T) {
	doc := `{"width": 1, "height": 1, "tiles": [{"name": "mystery"}]}`
	_, err := ReadJSON(strings.NewReader(doc))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidTile) {
		t.Fatalf("error = %v, want ErrCodeInvalidTile", err)
	}
}

func TestMalformedJSON(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"width": }`))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want ErrCodeInvalidFormat", err)
	}
}

func TestWriteSolutionJSON(t *testing.T) {
	sol := &solver.Solution{Placements: []board.Placement{
		board.Place("a", geom.NewShape(geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}), geom.Cell{Row: 0, Col: 0}),
	}}
	var buf bytes.Buffer
	if err := WriteSolutionJSON(&buf, sol); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"moves": 1`) {
		t.Errorf("output misses move count: %s", out)
	}
	if !strings.Contains(out, `"tile": "a"`) {
		t.Errorf("output misses placement tile: %s", out)
	}
}

func TestSolutionJSONRoundTrip(t *testing.T) {
	sol := &solver.Solution{Placements: []board.Placement{
		board.Place("a", geom.NewShape(geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}), geom.Cell{Row: 0, Col: 0}),
		board.Place("b", geom.NewShape(geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}), geom.Cell{Row: 1, Col: 0}),
	}}

	var buf bytes.Buffer
	if err := WriteSolutionJSON(&buf, sol); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSolutionJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Moves() != sol.Moves() {
		t.Fatalf("Moves = %d, want %d", got.Moves(), sol.Moves())
	}
	for i := range sol.Placements {
		if got.Placements[i].Tile != sol.Placements[i].Tile {
			t.Errorf("placement %d tile = %q, want %q", i, got.Placements[i].Tile, sol.Placements[i].Tile)
		}
		if got.Placements[i].Anchor != sol.Placements[i].Anchor {
			t.Errorf("placement %d anchor = %v, want %v", i, got.Placements[i].Anchor, sol.Placements[i].Anchor)
		}
	}
}

func TestMalformedSolutionJSON(t *testing.T) {
	_, err := ReadSolutionJSON(strings.NewReader(`{"moves": `))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want ErrCodeInvalidFormat", err)
	}
}

func assertSameDefinition(t *testing.T, want, got puzzle.Definition) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if len(got.Holes) != len(want.Holes) || (len(want.Holes) > 0 && got.Holes[0] != want.Holes[0]) {
		t.Errorf("holes = %v, want %v", got.Holes, want.Holes)
	}
	if len(got.Markers) != len(want.Markers) {
		t.Fatalf("markers = %v, want %v", got.Markers, want.Markers)
	}
	for i := range want.Markers {
		if got.Markers[i] != want.Markers[i] {
			t.Errorf("marker %d = %v, want %v", i, got.Markers[i], want.Markers[i])
		}
	}
	if len(got.Tiles) != len(want.Tiles) {
		t.Fatalf("tiles = %d, want %d", len(got.Tiles), len(want.Tiles))
	}
	for i := range want.Tiles {
		w, g := want.Tiles[i], got.Tiles[i]
		if g.Name != w.Name || g.Color != w.Color || g.Count != w.Count || !g.Shape.Equal(w.Shape) {
			t.Errorf("tile %d = %+v, want %+v", i, g, w)
		}
	}
}
