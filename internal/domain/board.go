package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Board is the fixed set of valid cells. Constructed once at startup and
// passed by reference into the generator and solvers; never mutated.
type Board struct {
	cells  []Cell
	index  map[Cell]int
	maxRow int
	maxCol int
}

// calendarRowWidths describes the irregular calendar board: two 6-wide month
// rows, four 7-wide day rows, and a final 3-wide row for days 29-31.
var calendarRowWidths = []int{6, 6, 7, 7, 7, 7, 3}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NewBoard builds a board from per-row widths, cells filling each row from
// column zero.
func NewBoard(rowWidths ...int) *Board {
	var cells []Cell
	for r, w := range rowWidths {
		for c := 0; c < w; c++ {
			cells = append(cells, Cell{Row: r, Col: c})
		}
	}
	return NewBoardFromCells(cells...)
}

// NewBoardFromCells builds a board from an explicit cell set. Duplicates are
// collapsed; cell order is normalized to row-major.
func NewBoardFromCells(cells ...Cell) *Board {
	seen := make(map[Cell]struct{}, len(cells))
	uniq := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Less(uniq[j]) })
	b := &Board{cells: uniq, index: make(map[Cell]int, len(uniq))}
	for i, c := range uniq {
		b.index[c] = i
		if c.Row > b.maxRow {
			b.maxRow = c.Row
		}
		if c.Col > b.maxCol {
			b.maxCol = c.Col
		}
	}
	return b
}

// NewCalendarBoard returns the 43-cell calendar puzzle board.
func NewCalendarBoard() *Board {
	return NewBoard(calendarRowWidths...)
}

// Cells returns the board cells in row-major order. Callers must not mutate
// the returned slice.
func (b *Board) Cells() []Cell { return b.cells }

// NumCells returns the number of valid cells.
func (b *Board) NumCells() int { return len(b.cells) }

// Contains reports whether c is a valid board cell.
func (b *Board) Contains(c Cell) bool {
	_, ok := b.index[c]
	return ok
}

// Index returns the dense row-major index of c, if c is on the board.
func (b *Board) Index(c Cell) (int, bool) {
	i, ok := b.index[c]
	return i, ok
}

// Bounds returns the largest row and column of any board cell.
func (b *Board) Bounds() (maxRow, maxCol int) {
	return b.maxRow, b.maxCol
}

// RowWidth returns the width of row r, derived from the rightmost cell.
func (b *Board) RowWidth(r int) int {
	w := 0
	for _, c := range b.cells {
		if c.Row == r && c.Col+1 > w {
			w = c.Col + 1
		}
	}
	return w
}

// MonthCell maps month 1-12 to its label cell on the calendar board.
func MonthCell(month int) (Cell, error) {
	if month < 1 || month > 12 {
		return Cell{}, fmt.Errorf("%w: month %d out of range", ErrInvalidTarget, month)
	}
	if month <= 6 {
		return Cell{Row: 0, Col: month - 1}, nil
	}
	return Cell{Row: 1, Col: month - 7}, nil
}

// DayCell maps day 1-31 to its label cell on the calendar board.
func DayCell(day int) (Cell, error) {
	if day < 1 || day > 31 {
		return Cell{}, fmt.Errorf("%w: day %d out of range", ErrInvalidTarget, day)
	}
	return Cell{Row: 2 + (day-1)/7, Col: (day - 1) % 7}, nil
}

// MonthName returns the English month name for 1-12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// ParseMonth accepts an English month name (case-insensitive) or "1".."12".
func ParseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	for i, name := range monthNames {
		if strings.EqualFold(s, name) {
			return i + 1, true
		}
	}
	var m int
	if _, err := fmt.Sscanf(s, "%d", &m); err == nil && m >= 1 && m <= 12 {
		return m, true
	}
	return 0, false
}

// Target is the pair of cells left uncovered for display: the month cell and
// the day cell of the requested date.
type Target struct {
	MonthCell Cell `json:"monthCell"`
	DayCell   Cell `json:"dayCell"`
}

// NewTarget validates the visible-cell pair against the board: both cells
// must be on the board and distinct.
func NewTarget(b *Board, monthCell, dayCell Cell) (Target, error) {
	if monthCell == dayCell {
		return Target{}, fmt.Errorf("%w: month and day cells are equal (%v)", ErrInvalidTarget, monthCell)
	}
	if !b.Contains(monthCell) {
		return Target{}, fmt.Errorf("%w: month cell %v not on board", ErrInvalidTarget, monthCell)
	}
	if !b.Contains(dayCell) {
		return Target{}, fmt.Errorf("%w: day cell %v not on board", ErrInvalidTarget, dayCell)
	}
	return Target{MonthCell: monthCell, DayCell: dayCell}, nil
}

// TargetForDate maps a validated calendar date to its visible-cell pair.
func TargetForDate(b *Board, month, day int) (Target, error) {
	mc, err := MonthCell(month)
	if err != nil {
		return Target{}, err
	}
	dc, err := DayCell(day)
	if err != nil {
		return Target{}, err
	}
	return NewTarget(b, mc, dc)
}

// Covers reports whether c is one of the two visible cells.
func (t Target) Covers(c Cell) bool {
	return c == t.MonthCell || c == t.DayCell
}
