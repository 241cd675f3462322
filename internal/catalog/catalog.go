package catalog

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// MaxShapeSize is the largest supported bounding box (the I piece's 4x4).
const MaxShapeSize = 4

// Shape is an immutable square occupancy matrix for one rotation state.
// Cells are addressed (x, y) from the top-left of the bounding box.
type Shape struct {
	size   int
	cells  [MaxShapeSize][MaxShapeSize]bool
	blocks []core.Point
}

// NewShape builds a shape from rows of '.' (empty) and 'X' or '#' (filled).
// Rows are not validated here; see Validate.
func NewShape(rows []string) Shape {
	s := Shape{size: len(rows)}
	for y, row := range rows {
		for x, ch := range row {
			if x >= MaxShapeSize || y >= MaxShapeSize {
				continue
			}
			if ch == 'X' || ch == '#' {
				s.cells[y][x] = true
				s.blocks = append(s.blocks, core.Pt(x, y))
			}
		}
	}
	return s
}

// Size returns the width (and height) of the bounding box.
func (s Shape) Size() int {
	return s.size
}

// Filled reports whether the cell (x, y) of the bounding box is occupied.
func (s Shape) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= s.size || y >= s.size {
		return false
	}
	return s.cells[y][x]
}

// Blocks returns the occupied cells in row-major order.
// The returned slice must not be modified.
func (s Shape) Blocks() []core.Point {
	return s.blocks
}

// Rows renders the shape back to the '.'/'X' notation.
func (s Shape) Rows() []string {
	rows := make([]string, s.size)
	for y := range s.size {
		var sb strings.Builder
		for x := range s.size {
			if s.cells[y][x] {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// ScoreTable holds the base points per clear kind and the drop bonuses.
type ScoreTable struct {
	Lines     [4]int // Single, double, triple, tetris; indexed by lines-1
	TSpin     [4]int // T-spin with 0..3 lines
	TSpinMini [3]int // T-spin mini with 0..2 lines
	ComboBase int    // Combo multiplier applies once the counter exceeds this
	SoftDrop  int    // Points per cell of soft drop
	HardDrop  int    // Points per cell of hard drop
}

// Catalog is the complete, validated data set consumed by the engine.
type Catalog struct {
	shapes  [PieceCount][RotationCount]Shape
	colors  [PieceCount]int // 1-based index into palette
	palette []core.Color
	kicks   [2][RotationCount][2][]core.Point

	Score        ScoreTable
	SpinUpgrades []Transition
}

// Shape returns the matrix for a piece in a rotation state.
func (c *Catalog) Shape(t PieceType, r Rotation) Shape {
	return c.shapes[t][r%RotationCount]
}

// ColorIndex returns the 1-based palette index used for a piece's cells.
func (c *Catalog) ColorIndex(t PieceType) int {
	return c.colors[t]
}

// Color resolves a board cell value (1-based palette index) to a color.
// Zero and out-of-range values resolve to ColorDefault.
func (c *Catalog) Color(index int) core.Color {
	if index < 1 || index > len(c.palette) {
		return core.ColorDefault
	}
	return c.palette[index-1]
}

// PieceColor is shorthand for Color(ColorIndex(t)).
func (c *Catalog) PieceColor(t PieceType) core.Color {
	return c.Color(c.ColorIndex(t))
}

// Kicks returns the ordered offset candidates tried when rotating piece t
// out of state r in direction d. Offsets use y-down board coordinates.
func (c *Catalog) Kicks(t PieceType, r Rotation, d Direction) []core.Point {
	return c.kicks[CategoryOf(t)][r%RotationCount][d]
}

// Upgrades reports whether a final-candidate kick on this transition
// promotes a T-spin mini to a full T-spin.
func (c *Catalog) Upgrades(tr Transition) bool {
	for _, u := range c.SpinUpgrades {
		if u == tr {
			return true
		}
	}
	return false
}
