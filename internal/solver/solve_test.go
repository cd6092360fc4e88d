package solver

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/generator"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/ports"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/validator"
)

func calendarFixture(t *testing.T) (*domain.Board, []domain.Placement) {
	t.Helper()
	board := domain.NewCalendarBoard()
	placements, err := generator.New().Generate(context.Background(), board, domain.DefaultPieces())
	if err != nil {
		t.Fatalf("placement generation failed: %v", err)
	}
	return board, placements
}

func solvers(board *domain.Board, placements []domain.Placement) map[string]ports.Solver {
	return map[string]ports.Solver{
		"backtrack": NewBacktrackingSolver(board, placements),
		"dlx":       NewDLXSolver(board, placements),
	}
}

func TestSolveJanuaryFirst(t *testing.T) {
	board, placements := calendarFixture(t)
	target, err := domain.TargetForDate(board, 1, 1)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	for name, s := range solvers(board, placements) {
		t.Run(name, func(t *testing.T) {
			sol, st, err := s.Solve(context.Background(), target)
			if err != nil {
				t.Fatalf("Solve failed: %v (attempts=%d dur=%v)", err, st.Attempts, st.Duration)
			}
			if len(sol.Placements) != 8 {
				t.Fatalf("got %d placements, want 8", len(sol.Placements))
			}
			if st.Attempts <= 0 {
				t.Fatalf("attempts not counted: %d", st.Attempts)
			}
			if st.Attempts > 5_000_000 {
				t.Fatalf("search blew up: %d attempts", st.Attempts)
			}
			ok, conflicts, err := validator.New().Validate(board, target, sol)
			if err != nil || !ok {
				t.Fatalf("exact-cover invariant violated: err=%v conflicts=%v", err, conflicts)
			}
		})
	}
}

func TestSolveJuly6Deterministic(t *testing.T) {
	board, placements := calendarFixture(t)
	target, err := domain.TargetForDate(board, 7, 6)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	for name, mk := range map[string]func() ports.Solver{
		"backtrack": func() ports.Solver { return NewBacktrackingSolver(board, placements) },
		"dlx":       func() ports.Solver { return NewDLXSolver(board, placements) },
	} {
		t.Run(name, func(t *testing.T) {
			s := mk()
			first, st1, err := s.Solve(context.Background(), target)
			if err != nil {
				t.Fatalf("first solve failed: %v", err)
			}
			// Same instance again, and a fresh instance: both must agree.
			second, st2, err := s.Solve(context.Background(), target)
			if err != nil {
				t.Fatalf("second solve failed: %v", err)
			}
			third, st3, err := mk().Solve(context.Background(), target)
			if err != nil {
				t.Fatalf("fresh-instance solve failed: %v", err)
			}
			if !reflect.DeepEqual(first.Placements, second.Placements) ||
				!reflect.DeepEqual(first.Placements, third.Placements) {
				t.Fatal("repeated solves produced different placement lists")
			}
			if st1.Attempts != st2.Attempts || st1.Attempts != st3.Attempts {
				t.Fatalf("attempt counts differ: %d, %d, %d", st1.Attempts, st2.Attempts, st3.Attempts)
			}
		})
	}
}

func TestSolveRejectsInvalidTarget(t *testing.T) {
	board, placements := calendarFixture(t)
	cases := []struct {
		name   string
		target domain.Target
	}{
		{"equal cells", domain.Target{MonthCell: domain.Cell{Row: 0, Col: 0}, DayCell: domain.Cell{Row: 0, Col: 0}}},
		{"month off board", domain.Target{MonthCell: domain.Cell{Row: 0, Col: 6}, DayCell: domain.Cell{Row: 2, Col: 0}}},
		{"day off board", domain.Target{MonthCell: domain.Cell{Row: 0, Col: 0}, DayCell: domain.Cell{Row: 9, Col: 9}}},
	}
	for sname, s := range solvers(board, placements) {
		for _, tc := range cases {
			t.Run(sname+"/"+tc.name, func(t *testing.T) {
				sol, _, err := s.Solve(context.Background(), tc.target)
				if !errors.Is(err, domain.ErrInvalidTarget) {
					t.Fatalf("got err=%v, want ErrInvalidTarget", err)
				}
				if sol != nil {
					t.Fatal("rejected request must not return a solution")
				}
			})
		}
	}
}

// A 1x6 strip where the piece areas cannot sum to the uncovered area. The
// search has real candidates to commit and retract before exhausting.
func TestSolveNoSolutionAfterBacktracking(t *testing.T) {
	board := domain.NewBoard(6)
	pieces := []domain.Piece{
		{Name: "I", Shape: domain.Shape{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		{Name: "D", Shape: domain.Shape{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
	}
	placements, err := generator.New().Generate(context.Background(), board, pieces)
	if err != nil {
		t.Fatalf("placement generation failed: %v", err)
	}
	target, err := domain.NewTarget(board, domain.Cell{Row: 0, Col: 0}, domain.Cell{Row: 0, Col: 1})
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	for name, s := range solvers(board, placements) {
		t.Run(name, func(t *testing.T) {
			sol, st, err := s.Solve(context.Background(), target)
			if !errors.Is(err, domain.ErrNoSolution) {
				t.Fatalf("got err=%v, want ErrNoSolution", err)
			}
			if sol != nil {
				t.Fatal("no solution must be reported as nil")
			}
			if st.Attempts <= 0 {
				t.Fatalf("search should have tried candidates, attempts=%d", st.Attempts)
			}
		})
	}
}

// A board with a cell no placement can reach: the dead end is detected
// immediately instead of hanging.
func TestSolveIsolatedCell(t *testing.T) {
	board := domain.NewBoardFromCells(
		domain.Cell{Row: 0, Col: 0},
		domain.Cell{Row: 0, Col: 1},
		domain.Cell{Row: 0, Col: 2},
		domain.Cell{Row: 0, Col: 3},
		domain.Cell{Row: 3, Col: 3},
	)
	pieces := []domain.Piece{
		{Name: "I", Shape: domain.Shape{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
	}
	placements, err := generator.New().Generate(context.Background(), board, pieces)
	if err != nil {
		t.Fatalf("placement generation failed: %v", err)
	}
	target, err := domain.NewTarget(board, domain.Cell{Row: 0, Col: 0}, domain.Cell{Row: 0, Col: 1})
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	for name, s := range solvers(board, placements) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.Solve(context.Background(), target)
			if !errors.Is(err, domain.ErrNoSolution) {
				t.Fatalf("got err=%v, want ErrNoSolution", err)
			}
		})
	}
}

func TestSolveCanceledContext(t *testing.T) {
	board, placements := calendarFixture(t)
	target, err := domain.TargetForDate(board, 7, 6)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range solvers(board, placements) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.Solve(ctx, target)
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("got err=%v, want context.Canceled", err)
			}
		})
	}
}
