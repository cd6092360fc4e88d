package usecase

import (
	"context"
	"errors"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/ports"
)

// Service ties the board to a solver and validator and maps calendar dates
// to visible-cell targets.
type Service struct {
	Board     *domain.Board
	Solver    ports.Solver
	Validator ports.Validator
}

func NewService(board *domain.Board, s ports.Solver, v ports.Validator) *Service {
	return &Service{Board: board, Solver: s, Validator: v}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// SolveDate validates the date, maps it to its two visible cells and runs
// the solver.
func (u *Service) SolveDate(ctx context.Context, month, day int) (*domain.Solution, domain.Target, ports.Stats, error) {
	if u.Solver == nil {
		return nil, domain.Target{}, ports.Stats{}, errNotConfigured
	}
	target, err := domain.TargetForDate(u.Board, month, day)
	if err != nil {
		return nil, domain.Target{}, ports.Stats{}, err
	}
	sol, st, err := u.Solver.Solve(ctx, target)
	return sol, target, st, err
}

// SolveTarget runs the solver for an explicit visible-cell pair.
func (u *Service) SolveTarget(ctx context.Context, target domain.Target) (*domain.Solution, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, target)
}

// Check verifies the exact-cover invariants of a solution.
func (u *Service) Check(target domain.Target, sol *domain.Solution) (bool, []domain.Cell, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(u.Board, target, sol)
}
