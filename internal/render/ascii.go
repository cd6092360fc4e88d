package render

import (
	"fmt"
	"strings"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
)

// Board draws the solved calendar board as text, one three-character slot
// per cell: piece letters for covered cells, the month abbreviation and the
// day number in the two visible cells.
func Board(b *domain.Board, sol *domain.Solution, month, day int) (string, error) {
	maxRow, _ := b.Bounds()
	rows := make([][]string, maxRow+1)
	for r := range rows {
		rows[r] = make([]string, b.RowWidth(r))
		for c := range rows[r] {
			rows[r][c] = "   "
		}
	}
	for _, p := range sol.Placements {
		for _, c := range p.Cells {
			rows[c.Row][c.Col] = " " + p.Piece + " "
		}
	}

	mc, err := domain.MonthCell(month)
	if err != nil {
		return "", err
	}
	dc, err := domain.DayCell(day)
	if err != nil {
		return "", err
	}
	rows[mc.Row][mc.Col] = domain.MonthName(month)[:3]
	rows[dc.Row][dc.Col] = fmt.Sprintf("%3d", day)

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
