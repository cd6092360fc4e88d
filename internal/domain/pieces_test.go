package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPiecesGeometry(t *testing.T) {
	pieces := DefaultPieces()
	require.Len(t, pieces, 8)

	area := 0
	for _, p := range pieces {
		if p.Name == "E" {
			assert.Len(t, p.Shape, 6, "E is the 2x3 block")
		} else {
			assert.Len(t, p.Shape, 5, "piece %s", p.Name)
		}
		area += len(p.Shape)
	}
	// 43 board cells minus the two visible date cells.
	assert.Equal(t, 41, area)
}

func TestOrientationsDeduplicated(t *testing.T) {
	for _, p := range DefaultPieces() {
		ors := p.Orientations()
		seen := make(map[string]struct{})
		for _, o := range ors {
			key := o.Cells.Normalize().Key()
			_, dup := seen[key]
			assert.False(t, dup, "piece %s rotation %d flipped %v duplicates an earlier orientation", p.Name, o.Rotation, o.Flipped)
			seen[key] = struct{}{}
			assert.Len(t, o.Cells, len(p.Shape), "orientation must preserve area")
		}
	}
}

func TestOrientationCounts(t *testing.T) {
	want := map[string]int{
		"A": 8, // L, chiral
		"B": 8, // Y, chiral
		"C": 8, // N, chiral
		"D": 4, // U, mirror-symmetric
		"E": 2, // 2x3 block
		"F": 8, // P, chiral
		"G": 4, // Z, 180-degree symmetric
		"H": 4, // V, diagonal-symmetric
	}
	for _, p := range DefaultPieces() {
		assert.Equal(t, want[p.Name], len(p.Orientations()), "piece %s", p.Name)
	}
}

func TestShapeTransforms(t *testing.T) {
	// Vertical domino rotates into a horizontal one.
	s := Shape{{Row: 0, Col: 0}, {Row: 1, Col: 0}}
	assert.Equal(t, Shape{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, s.Rotate().Normalize())

	// Four rotations compose to the identity.
	l := Shape{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	assert.Equal(t, l.Normalize(), l.Rotate().Rotate().Rotate().Rotate().Normalize())

	// Flip is an involution.
	assert.Equal(t, l.Normalize(), l.Flip().Flip().Normalize())
}
