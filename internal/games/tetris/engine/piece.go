package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/catalog"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Piece is a tetromino placed on the board. X and Y locate the top-left
// corner of its shape box; Y counts from the top of the buffer zone.
type Piece struct {
	Type catalog.PieceType
	X, Y int
	Rot  catalog.Rotation
}

// Moved returns the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells returns the board coordinates of the piece's blocks.
func (p Piece) Cells(cat *catalog.Catalog) []core.Point {
	blocks := cat.Shape(p.Type, p.Rot).Blocks()
	out := make([]core.Point, len(blocks))
	for i, c := range blocks {
		out[i] = core.Pt(p.X, p.Y).Add(c)
	}
	return out
}

// MoveKind tags the last successful action applied to the active piece.
type MoveKind uint8

const (
	MoveNone MoveKind = iota
	MoveShift
	MoveFall
	MoveDrop
	MoveRotate
)

func (m MoveKind) String() string {
	switch m {
	case MoveShift:
		return "shift"
	case MoveFall:
		return "fall"
	case MoveDrop:
		return "drop"
	case MoveRotate:
		return "rotate"
	default:
		return "none"
	}
}

// LastRotation records how the most recent successful rotation resolved.
type LastRotation struct {
	Transition catalog.Transition
	Kick       int  // Index of the kick candidate that fit
	LastKick   bool // The final candidate of the table was used
}

// RotateResult is returned by Session.Rotate.
type RotateResult struct {
	OK       bool
	Kick     int
	LastKick bool
}
