package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/ports"
)

// DLXSolver implements Algorithm X with dancing links.
// Exact-cover mapping: one column per board cell that needs covering (all
// cells except the two visible ones), plus one column per piece so every
// piece is used exactly once. One row per placement that survives the
// visible-cell filter, with a node in each covered cell column and in its
// piece column.
type DLXSolver struct {
	board      *domain.Board
	placements []domain.Placement
}

// NewDLXSolver wires a solver over a fixed board and its precomputed
// placement list. The matrix itself is rebuilt per call because the covered
// universe depends on the visible cells.
func NewDLXSolver(board *domain.Board, placements []domain.Placement) *DLXSolver {
	return &DLXSolver{board: board, placements: placements}
}

// node/column structures (classic dancing links)
type dlxNode struct {
	left, right, up, down *dlxNode
	col                   *dlxColumn
	rowIdx                int // index into the filtered row list
}

type dlxColumn struct {
	dlxNode
	size   int
	active bool // whether this constraint column is currently uncovered
}

type dlxMatrix struct {
	cols      []*dlxColumn
	activeCnt int
	rows      []int // filtered row -> placement index
	sol       []*dlxNode
	attempts  int
}

func newColumn() *dlxColumn {
	c := &dlxColumn{active: true}
	c.up = &c.dlxNode
	c.down = &c.dlxNode
	return c
}

// buildMatrix assembles the sparse matrix for one target. Column order is
// cells in row-major order followed by pieces in placement-list order; row
// order follows the placement list. Both orders are fixed, which keeps the
// attempt count deterministic.
func (s *DLXSolver) buildMatrix(target domain.Target) (*dlxMatrix, error) {
	cellCol := make(map[int]*dlxColumn) // board cell index -> column
	m := &dlxMatrix{}
	for i, c := range s.board.Cells() {
		if target.Covers(c) {
			continue
		}
		col := newColumn()
		cellCol[i] = col
		m.cols = append(m.cols, col)
	}

	pieceCol := make(map[string]*dlxColumn)
	for _, p := range s.placements {
		if _, ok := pieceCol[p.Piece]; !ok {
			col := newColumn()
			pieceCol[p.Piece] = col
			m.cols = append(m.cols, col)
		}
	}
	m.activeCnt = len(m.cols)

	appendNode := func(col *dlxColumn, row int, first **dlxNode, prev **dlxNode) {
		n := &dlxNode{col: col, rowIdx: row}
		n.down = &col.dlxNode
		n.up = col.dlxNode.up
		col.dlxNode.up.down = n
		col.dlxNode.up = n
		col.size++
		if *first == nil {
			*first = n
			n.left = n
			n.right = n
		} else {
			n.left = *prev
			n.right = (*prev).right
			(*prev).right.left = n
			(*prev).right = n
		}
		*prev = n
	}

	for pi, p := range s.placements {
		skip := false
		idxs := make([]int, 0, len(p.Cells))
		for _, c := range p.Cells {
			idx, ok := s.board.Index(c)
			if !ok {
				return nil, fmt.Errorf("placement %d covers %v outside the board", pi, c)
			}
			if target.Covers(c) {
				skip = true
				break
			}
			idxs = append(idxs, idx)
		}
		if skip {
			continue
		}
		row := len(m.rows)
		m.rows = append(m.rows, pi)
		var first, prev *dlxNode
		for _, idx := range idxs {
			appendNode(cellCol[idx], row, &first, &prev)
		}
		appendNode(pieceCol[p.Piece], row, &first, &prev)
	}
	return m, nil
}

func (m *dlxMatrix) cover(col *dlxColumn) {
	if col.active {
		col.active = false
		m.activeCnt--
	}
	for i := col.down; i != &col.dlxNode; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (m *dlxMatrix) uncover(col *dlxColumn) {
	for i := col.up; i != &col.dlxNode; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		m.activeCnt++
	}
}

// chooseColumn returns the active column with the smallest size; the first
// such column in construction order wins ties.
func (m *dlxMatrix) chooseColumn() *dlxColumn {
	var best *dlxColumn
	for _, c := range m.cols {
		if !c.active {
			continue
		}
		if best == nil || c.size < best.size {
			best = c
			if best.size == 0 {
				break
			}
		}
	}
	return best
}

func (m *dlxMatrix) search(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if m.activeCnt == 0 {
		return true
	}
	c := m.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	m.cover(c)
	for r := c.down; r != &c.dlxNode; r = r.down {
		m.attempts++
		m.sol = append(m.sol, r)
		for j := r.right; j != r; j = j.right {
			m.cover(j.col)
		}
		if m.search(ctx) {
			for j := r.left; j != r; j = j.left {
				m.uncover(j.col)
			}
			m.uncover(c)
			return true
		}
		for j := r.left; j != r; j = j.left {
			m.uncover(j.col)
		}
		m.sol = m.sol[:len(m.sol)-1]
	}
	m.uncover(c)
	return false
}

func (s *DLXSolver) Solve(ctx context.Context, target domain.Target) (*domain.Solution, ports.Stats, error) {
	start := time.Now()
	if _, err := domain.NewTarget(s.board, target.MonthCell, target.DayCell); err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	m, err := s.buildMatrix(target)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	found := m.search(ctx)
	st := ports.Stats{Attempts: m.attempts, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}
	if !found {
		return nil, st, domain.ErrNoSolution
	}
	sol := &domain.Solution{Placements: make([]domain.Placement, len(m.sol))}
	for i, n := range m.sol {
		sol.Placements[i] = s.placements[m.rows[n.rowIdx]]
	}
	return sol, st, nil
}
