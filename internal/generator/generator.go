package generator

import (
	"context"
	"fmt"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
)

// PlacementGenerator enumerates every valid placement of every piece on a
// board: each distinct orientation, at each translation whose image lies
// fully inside the irregular board cell set.
type PlacementGenerator struct{}

func New() *PlacementGenerator { return &PlacementGenerator{} }

// Generate returns the full placement list in a deterministic order: piece
// order, then orientation order, then row-major anchor. The result does not
// depend on which cells are visible, so it can be computed once and reused
// for every date.
func (g *PlacementGenerator) Generate(ctx context.Context, board *domain.Board, pieces []domain.Piece) ([]domain.Placement, error) {
	maxRow, maxCol := board.Bounds()
	var out []domain.Placement
	for _, piece := range pieces {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(piece.Shape) == 0 {
			return nil, fmt.Errorf("piece %q has an empty shape", piece.Name)
		}
		for oi, o := range piece.Orientations() {
			shapeMaxR, shapeMaxC := o.Cells.Bounds()
			for tr := 0; tr+shapeMaxR <= maxRow; tr++ {
				for tc := 0; tc+shapeMaxC <= maxCol; tc++ {
					anchor := domain.Cell{Row: tr, Col: tc}
					cells, ok := image(board, o.Cells, anchor)
					if !ok {
						continue
					}
					out = append(out, domain.Placement{
						Piece:       piece.Name,
						Orientation: oi,
						Rotation:    o.Rotation,
						Flipped:     o.Flipped,
						Anchor:      anchor,
						Cells:       cells,
					})
				}
			}
		}
	}
	return out, nil
}

// image translates the shape by anchor and checks containment against the
// actual board cell set, not just its bounding rectangle.
func image(board *domain.Board, shape domain.Shape, anchor domain.Cell) ([]domain.Cell, bool) {
	cells := make([]domain.Cell, 0, len(shape))
	for _, off := range shape {
		c := anchor.Add(off)
		if !board.Contains(c) {
			return nil, false
		}
		cells = append(cells, c)
	}
	return cells, true
}
