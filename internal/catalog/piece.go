// Package catalog is the data provider for the falling-block engine.
// It owns the piece shapes, SRS kick tables, colors and the score table,
// loads them from YAML and validates them before a session starts.
// The engine addresses every table through the enums defined here.
package catalog

import "fmt"

// PieceType identifies one of the seven tetrominoes.
type PieceType uint8

const (
	T PieceType = iota
	O
	I
	S
	Z
	J
	L
)

// NoPiece marks an empty hold slot or an unset piece.
const NoPiece PieceType = 0xff

// PieceCount is the number of distinct piece types.
const PieceCount = 7

// AllPieces lists every piece type in table order.
var AllPieces = [PieceCount]PieceType{T, O, I, S, Z, J, L}

var pieceNames = [PieceCount]string{"T", "O", "I", "S", "Z", "J", "L"}

// String returns the single-letter name of the piece.
func (p PieceType) String() string {
	if !p.Valid() {
		return "-"
	}
	return pieceNames[p]
}

// Valid reports whether p is one of the seven piece types.
func (p PieceType) Valid() bool {
	return p < PieceCount
}

// ParsePieceType resolves a single-letter piece name.
func ParsePieceType(name string) (PieceType, error) {
	for i, n := range pieceNames {
		if n == name {
			return PieceType(i), nil
		}
	}
	return NoPiece, fmt.Errorf("unknown piece type %q", name)
}

// Rotation is an SRS rotation state, always in 0..3.
type Rotation uint8

const (
	RotSpawn Rotation = iota // 0
	RotRight                 // R
	RotHalf                  // 2
	RotLeft                  // L
)

// RotationCount is the number of rotation states per piece.
const RotationCount = 4

// CW returns the state after a clockwise turn.
func (r Rotation) CW() Rotation {
	return (r + 1) % RotationCount
}

// CCW returns the state after a counterclockwise turn, wrapping 0 to 3.
func (r Rotation) CCW() Rotation {
	return (r + RotationCount - 1) % RotationCount
}

// Turn returns the state reached by rotating in direction d.
func (r Rotation) Turn(d Direction) Rotation {
	if d == CCW {
		return r.CCW()
	}
	return r.CW()
}

// String returns the SRS name of the state (0, R, 2, L).
func (r Rotation) String() string {
	switch r {
	case RotSpawn:
		return "0"
	case RotRight:
		return "R"
	case RotHalf:
		return "2"
	case RotLeft:
		return "L"
	default:
		return "?"
	}
}

// Direction is a rotation direction.
type Direction uint8

const (
	CW Direction = iota
	CCW
)

// String returns "cw" or "ccw".
func (d Direction) String() string {
	if d == CCW {
		return "ccw"
	}
	return "cw"
}

// KickCategory selects which kick table a piece uses.
type KickCategory uint8

const (
	KickNormal KickCategory = iota // J, L, S, T, Z and O
	KickI                          // I piece
)

// CategoryOf returns the kick table category for a piece type.
func CategoryOf(p PieceType) KickCategory {
	if p == I {
		return KickI
	}
	return KickNormal
}

// Transition is a rotation from one state to another.
type Transition struct {
	From Rotation
	To   Rotation
}
