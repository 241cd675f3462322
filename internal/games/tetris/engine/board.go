// Package engine implements the guideline falling-block rules: the board,
// the 7-bag queue, SRS rotation, lock delay, spin detection and scoring.
// It has no terminal dependencies; the tetris package adapts it to the
// platform and renders it.
package engine

import "github.com/vovakirdan/tui-tetris/internal/catalog"

// Board dimensions. Rows are numbered from the top of the buffer zone,
// so the visible playfield is rows [BufferRows, Rows).
const (
	Width       = 10
	VisibleRows = 20
	Rows        = 40
	BufferRows  = Rows - VisibleRows
)

// Board is the grid of locked cells. A cell value of 0 is empty;
// values from 1 are 1-based palette indexes. The zero value is an empty board.
type Board struct {
	cells [Rows][Width]uint8
}

// Reset empties the board.
func (b *Board) Reset() {
	b.cells = [Rows][Width]uint8{}
}

// InBounds reports whether (x, y) lies on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Rows
}

// Cell returns the value at (x, y), or 0 outside the grid.
func (b *Board) Cell(x, y int) int {
	if !InBounds(x, y) {
		return 0
	}
	return int(b.cells[y][x])
}

// Set writes a cell value. Out-of-bounds coordinates are ignored.
func (b *Board) Set(x, y, v int) {
	if !InBounds(x, y) {
		return
	}
	b.cells[y][x] = uint8(v)
}

// Occupied reports whether (x, y) is an occupied in-bounds cell.
func (b *Board) Occupied(x, y int) bool {
	return b.Cell(x, y) != 0
}

// Blocked reports whether a piece cell may not be at (x, y): left or right
// of the grid, below the floor, or occupied. Rows above the top are open.
func (b *Board) Blocked(x, y int) bool {
	if x < 0 || x >= Width || y >= Rows {
		return true
	}
	if y < 0 {
		return false
	}
	return b.cells[y][x] != 0
}

// CornerBlocked reports whether a T-spin corner at (x, y) counts as
// blocked: occupied, or below the floor. The side walls do not count.
func (b *Board) CornerBlocked(x, y int) bool {
	return y >= Rows || b.Occupied(x, y)
}

// Collides reports whether shape placed with its box origin at (x, y)
// overlaps a blocked cell.
func (b *Board) Collides(shape catalog.Shape, x, y int) bool {
	for _, c := range shape.Blocks() {
		if b.Blocked(x+c.X, y+c.Y) {
			return true
		}
	}
	return false
}

// Lock writes the shape's cells with the given color. Cells above the top
// of the grid are discarded. It returns the number of cells written.
func (b *Board) Lock(shape catalog.Shape, x, y, color int) int {
	n := 0
	for _, c := range shape.Blocks() {
		cx, cy := x+c.X, y+c.Y
		if !InBounds(cx, cy) {
			continue
		}
		b.cells[cy][cx] = uint8(color)
		n++
	}
	return n
}

// Row returns a copy of row y, or an empty row outside the grid.
func (b *Board) Row(y int) [Width]uint8 {
	if y < 0 || y >= Rows {
		return [Width]uint8{}
	}
	return b.cells[y]
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// FullRows returns the full rows of the visible playfield, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := BufferRows; y < Rows; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearAndCompact removes every full visible row and shifts the rows above
// it down. All rows are tested before any is removed, then cleared top to
// bottom so each shift leaves the remaining full rows where they were found.
func (b *Board) ClearAndCompact() int {
	full := b.FullRows()
	for _, y := range full {
		b.collapse(y)
	}
	return len(full)
}

// collapse drops every row above y by one and empties the top row.
func (b *Board) collapse(y int) {
	for r := y; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = [Width]uint8{}
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for y := range b.cells {
		for _, v := range b.cells[y] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// StackHeight returns the number of rows from the floor to the highest
// occupied cell.
func (b *Board) StackHeight() int {
	for y := range b.cells {
		for _, v := range b.cells[y] {
			if v != 0 {
				return Rows - y
			}
		}
	}
	return 0
}
