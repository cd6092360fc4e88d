package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Shape is a set of relative cell offsets describing a polyomino.
type Shape []Cell

// Rotate turns the shape 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	h := 0
	for _, c := range s {
		if c.Row+1 > h {
			h = c.Row + 1
		}
	}
	out := make(Shape, len(s))
	for i, c := range s {
		out[i] = Cell{Row: c.Col, Col: h - 1 - c.Row}
	}
	return out
}

// Flip mirrors the shape horizontally.
func (s Shape) Flip() Shape {
	w := 0
	for _, c := range s {
		if c.Col+1 > w {
			w = c.Col + 1
		}
	}
	out := make(Shape, len(s))
	for i, c := range s {
		out[i] = Cell{Row: c.Row, Col: w - 1 - c.Col}
	}
	return out
}

// Normalize shifts the shape so its minimum row and column are zero and
// sorts the offsets row-major. Two transforms of a piece are geometrically
// identical iff their normalized shapes are equal.
func (s Shape) Normalize() Shape {
	if len(s) == 0 {
		return s
	}
	minR, minC := s[0].Row, s[0].Col
	for _, c := range s[1:] {
		if c.Row < minR {
			minR = c.Row
		}
		if c.Col < minC {
			minC = c.Col
		}
	}
	out := make(Shape, len(s))
	for i, c := range s {
		out[i] = Cell{Row: c.Row - minR, Col: c.Col - minC}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Key returns a canonical string for the normalized shape, used for dedup.
func (s Shape) Key() string {
	var sb strings.Builder
	for _, c := range s {
		fmt.Fprintf(&sb, "%d,%d;", c.Row, c.Col)
	}
	return sb.String()
}

// Bounds returns the largest row and column offset in the shape.
func (s Shape) Bounds() (maxRow, maxCol int) {
	for _, c := range s {
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	return maxRow, maxCol
}

// Orientation is one distinct rotation/reflection variant of a piece.
type Orientation struct {
	Cells    Shape `json:"cells"`
	Rotation int   `json:"rotation"`
	Flipped  bool  `json:"flipped"`
}

// Piece is a named polyomino. Defined once at startup, never mutated.
type Piece struct {
	Name  string
	Shape Shape
}

// Orientations returns the distinct transforms of the piece in a fixed
// order: unflipped rotations 0/90/180/270, then flipped rotations, with
// geometric duplicates removed. The order is stable across runs, which keeps
// placement generation and search deterministic.
func (p Piece) Orientations() []Orientation {
	seen := make(map[string]struct{}, 8)
	var out []Orientation
	for _, flipped := range []bool{false, true} {
		cs := p.Shape
		if flipped {
			cs = cs.Flip()
		}
		for rot := 0; rot < 360; rot += 90 {
			norm := cs.Normalize()
			if _, dup := seen[norm.Key()]; !dup {
				seen[norm.Key()] = struct{}{}
				out = append(out, Orientation{Cells: norm, Rotation: rot, Flipped: flipped})
			}
			cs = cs.Rotate()
		}
	}
	return out
}

// shapeFromGrid converts a 0/1 occupancy grid to a shape.
func shapeFromGrid(grid [][]int) Shape {
	var s Shape
	for r, row := range grid {
		for c, v := range row {
			if v != 0 {
				s = append(s, Cell{Row: r, Col: c})
			}
		}
	}
	return s
}

// DefaultPieces returns the eight calendar puzzle pieces. Total area is 41
// cells: the 43-cell board minus the two visible date cells.
func DefaultPieces() []Piece {
	return []Piece{
		{Name: "A", Shape: shapeFromGrid([][]int{{1, 0}, {1, 0}, {1, 0}, {1, 1}})},
		{Name: "B", Shape: shapeFromGrid([][]int{{1, 0}, {1, 0}, {1, 1}, {1, 0}})},
		{Name: "C", Shape: shapeFromGrid([][]int{{1, 0}, {1, 0}, {1, 1}, {0, 1}})},
		{Name: "D", Shape: shapeFromGrid([][]int{{1, 1}, {1, 0}, {1, 1}})},
		{Name: "E", Shape: shapeFromGrid([][]int{{1, 1}, {1, 1}, {1, 1}})},
		{Name: "F", Shape: shapeFromGrid([][]int{{1, 0}, {1, 1}, {1, 1}})},
		{Name: "G", Shape: shapeFromGrid([][]int{{1, 1, 0}, {0, 1, 0}, {0, 1, 1}})},
		{Name: "H", Shape: shapeFromGrid([][]int{{1, 0, 0}, {1, 0, 0}, {1, 1, 1}})},
	}
}
