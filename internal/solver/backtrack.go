package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/ports"
)

// BacktrackingSolver runs Algorithm X over a sparse board/candidate
// representation: a covered flag per cell, a used flag per piece, and a
// per-cell list of candidate placements. The placement list is read-only and
// shared across calls; all mutable search state is per-call.
type BacktrackingSolver struct {
	board      *domain.Board
	placements []domain.Placement
	pieceIDs   map[string]int
	numPieces  int
}

// NewBacktrackingSolver wires a solver over a fixed board and its
// precomputed placement list.
func NewBacktrackingSolver(board *domain.Board, placements []domain.Placement) *BacktrackingSolver {
	s := &BacktrackingSolver{
		board:      board,
		placements: placements,
		pieceIDs:   make(map[string]int),
	}
	names := make([]string, 0, 8)
	seen := make(map[string]struct{})
	for _, p := range placements {
		if _, ok := seen[p.Piece]; !ok {
			seen[p.Piece] = struct{}{}
			names = append(names, p.Piece)
		}
	}
	sort.Strings(names)
	for i, n := range names {
		s.pieceIDs[n] = i
	}
	s.numPieces = len(names)
	return s
}

// candidate is one surviving placement, resolved to dense cell indices.
type candidate struct {
	placement int // index into s.placements
	cells     []int
	piece     int
}

func (s *BacktrackingSolver) Solve(ctx context.Context, target domain.Target) (*domain.Solution, ports.Stats, error) {
	start := time.Now()
	if _, err := domain.NewTarget(s.board, target.MonthCell, target.DayCell); err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}

	numCells := s.board.NumCells()
	needsCover := make([]bool, numCells)
	remaining := 0
	for i, c := range s.board.Cells() {
		if !target.Covers(c) {
			needsCover[i] = true
			remaining++
		}
	}

	// Drop placements touching a visible cell; index survivors per cell.
	byCell := make([][]*candidate, numCells)
	for pi, p := range s.placements {
		cells := make([]int, len(p.Cells))
		hit := false
		for i, c := range p.Cells {
			idx, ok := s.board.Index(c)
			if !ok {
				// The generator guarantees containment; this is a bug, not
				// a search failure.
				return nil, ports.Stats{Duration: time.Since(start)},
					fmt.Errorf("placement %d covers %v outside the board", pi, c)
			}
			if target.Covers(c) {
				hit = true
				break
			}
			cells[i] = idx
		}
		if hit {
			continue
		}
		cand := &candidate{placement: pi, cells: cells, piece: s.pieceIDs[p.Piece]}
		for _, idx := range cells {
			byCell[idx] = append(byCell[idx], cand)
		}
	}

	covered := make([]bool, numCells)
	pieceUsed := make([]bool, s.numPieces)
	var chosen []*candidate
	attempts := 0

	viable := func(c *candidate) bool {
		if pieceUsed[c.piece] {
			return false
		}
		for _, idx := range c.cells {
			if covered[idx] {
				return false
			}
		}
		return true
	}

	// Most-constrained-cell selection: the uncovered cell with the fewest
	// viable candidates, lowest row-major index on ties.
	chooseCell := func() (int, int) {
		best, bestCount := -1, -1
		for idx := 0; idx < numCells; idx++ {
			if !needsCover[idx] || covered[idx] {
				continue
			}
			n := 0
			for _, c := range byCell[idx] {
				if viable(c) {
					n++
				}
			}
			if best == -1 || n < bestCount {
				best, bestCount = idx, n
				if n == 0 {
					break
				}
			}
		}
		return best, bestCount
	}

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		if remaining == 0 {
			return true
		}
		cell, count := chooseCell()
		if count == 0 {
			return false // dead end, backtrack
		}
		for _, cand := range byCell[cell] {
			attempts++
			if !viable(cand) {
				continue
			}
			for _, idx := range cand.cells {
				covered[idx] = true
			}
			pieceUsed[cand.piece] = true
			remaining -= len(cand.cells)
			chosen = append(chosen, cand)

			if dfs() {
				return true
			}

			chosen = chosen[:len(chosen)-1]
			remaining += len(cand.cells)
			pieceUsed[cand.piece] = false
			for _, idx := range cand.cells {
				covered[idx] = false
			}
		}
		return false
	}

	found := dfs()
	st := ports.Stats{Attempts: attempts, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}
	if !found {
		return nil, st, domain.ErrNoSolution
	}
	sol := &domain.Solution{Placements: make([]domain.Placement, len(chosen))}
	for i, c := range chosen {
		sol.Placements[i] = s.placements[c.placement]
	}
	return sol, st, nil
}
