package validator

import (
	"fmt"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
)

// CoverValidator checks the exact-cover invariants of a solution: one
// placement per distinct piece, placements pairwise disjoint, and their
// union equal to the board cells minus the two visible cells.
type CoverValidator struct{}

func New() *CoverValidator { return &CoverValidator{} }

// Validate returns the cells that violate the cover: cells covered more than
// once, covered visible cells, and cells left uncovered. A reused piece name
// is reported as an error since it cannot be pinned to a single cell.
func (v *CoverValidator) Validate(board *domain.Board, target domain.Target, sol *domain.Solution) (bool, []domain.Cell, error) {
	if sol == nil {
		return false, nil, fmt.Errorf("nil solution")
	}
	seenPiece := make(map[string]struct{}, len(sol.Placements))
	count := make(map[domain.Cell]int, board.NumCells())
	var conflicts []domain.Cell

	for _, p := range sol.Placements {
		if _, dup := seenPiece[p.Piece]; dup {
			return false, nil, fmt.Errorf("piece %q used more than once", p.Piece)
		}
		seenPiece[p.Piece] = struct{}{}
		for _, c := range p.Cells {
			if !board.Contains(c) {
				return false, nil, fmt.Errorf("piece %q covers %v outside the board", p.Piece, c)
			}
			count[c]++
		}
	}

	for _, c := range board.Cells() {
		n := count[c]
		switch {
		case target.Covers(c):
			if n != 0 {
				conflicts = append(conflicts, c)
			}
		case n != 1:
			conflicts = append(conflicts, c)
		}
	}
	return len(conflicts) == 0, conflicts, nil
}
