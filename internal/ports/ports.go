package ports

import (
	"context"
	"time"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
)

// Stats captures the cost of a search: tentative placement commits examined
// and wall time spent.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// Solver finds a tiling that covers every board cell except the two visible
// target cells. Returns domain.ErrNoSolution after exhaustive failure and
// domain.ErrInvalidTarget for rejected requests; Stats are returned in every
// case.
type Solver interface {
	Solve(ctx context.Context, target domain.Target) (*domain.Solution, Stats, error)
}

// Generator materializes every geometrically valid placement of every piece
// on a board. Output is independent of the visible cells and safe to reuse
// across solver invocations.
type Generator interface {
	Generate(ctx context.Context, board *domain.Board, pieces []domain.Piece) ([]domain.Placement, error)
}

// Validator checks the exact-cover invariants of a returned solution.
type Validator interface {
	Validate(board *domain.Board, target domain.Target, sol *domain.Solution) (ok bool, conflicts []domain.Cell, err error)
}
