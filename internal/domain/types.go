package domain

import (
	"errors"
	"sort"
)

// Cell identifies a board position by row and column, origin at the top left.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add translates the cell by the given offset.
func (c Cell) Add(o Cell) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Less orders cells row-major. Used for normalization and tie-breaking.
func (c Cell) Less(o Cell) bool {
	return c.Row < o.Row || (c.Row == o.Row && c.Col < o.Col)
}

// Placement is one candidate positioning of one piece orientation on the
// board: the piece name, which orientation was used, the anchor translation,
// and the absolute cells it occupies (sorted row-major).
type Placement struct {
	Piece       string `json:"piece"`
	Orientation int    `json:"orientation"`
	Rotation    int    `json:"rotation"`
	Flipped     bool   `json:"flipped"`
	Anchor      Cell   `json:"anchor"`
	Cells       []Cell `json:"cells"`
}

// Solution is an ordered list of placements, one per piece, pairwise
// disjoint, covering every board cell except the two visible target cells.
type Solution struct {
	Placements []Placement `json:"placements"`
}

// ByPiece returns the placements sorted by piece name, for stable display.
func (s *Solution) ByPiece() []Placement {
	out := make([]Placement, len(s.Placements))
	copy(out, s.Placements)
	sort.Slice(out, func(i, j int) bool { return out[i].Piece < out[j].Piece })
	return out
}

// ErrInvalidTarget marks a rejected request: the two visible cells are equal
// or not on the board. Detected before any search work begins.
var ErrInvalidTarget = errors.New("invalid target cells")

// ErrNoSolution marks an exhaustive search that found no tiling. A normal
// outcome, not a malfunction; callers distinguish it with errors.Is.
var ErrNoSolution = errors.New("no tiling exists")
