package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/catalog"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// SpinKind classifies the lock that just happened.
type SpinKind uint8

const (
	SpinNone SpinKind = iota
	SpinMini
	SpinTSpin
)

func (k SpinKind) String() string {
	switch k {
	case SpinMini:
		return "T-SPIN MINI"
	case SpinTSpin:
		return "T-SPIN"
	default:
		return ""
	}
}

// Corner offsets within the T's 3x3 box, and the cells used to tell a
// full spin from a mini for each rotation state. The nub is the point:
// the front corners are the two box corners beside it, and the nose is the
// cell just past it, outside the box. A corner is blocked when occupied or
// below the floor.
var (
	tCorners = [4]core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}}

	tFront = [catalog.RotationCount][2]core.Point{
		catalog.RotSpawn: {{X: 0, Y: 0}, {X: 2, Y: 0}},
		catalog.RotRight: {{X: 2, Y: 0}, {X: 2, Y: 2}},
		catalog.RotHalf:  {{X: 0, Y: 2}, {X: 2, Y: 2}},
		catalog.RotLeft:  {{X: 0, Y: 0}, {X: 0, Y: 2}},
	}

	tNose = [catalog.RotationCount]core.Point{
		catalog.RotSpawn: {X: 1, Y: -1},
		catalog.RotRight: {X: 3, Y: 1},
		catalog.RotHalf:  {X: 1, Y: 3},
		catalog.RotLeft:  {X: -1, Y: 1},
	}
)

// ClassifySpin decides whether locking p is a T-spin. Only a T whose last
// successful action was a rotation can spin. Three or more blocked box
// corners make at least a mini (side walls never count); it is a full T-spin when both front corners
// are blocked, when the nose cell is occupied, or when the rotation needed
// the final kick candidate on one of the catalog's upgrade transitions.
func ClassifySpin(b *Board, cat *catalog.Catalog, p Piece, move MoveKind, last LastRotation) SpinKind {
	if p.Type != catalog.T || move != MoveRotate {
		return SpinNone
	}
	if cat.Shape(p.Type, p.Rot).Size() != 3 {
		return SpinNone
	}

	origin := core.Pt(p.X, p.Y)
	blocked := func(o core.Point) bool {
		c := origin.Add(o)
		return b.CornerBlocked(c.X, c.Y)
	}

	corners := 0
	for _, c := range tCorners {
		if blocked(c) {
			corners++
		}
	}
	if corners < 3 {
		return SpinNone
	}

	front := tFront[p.Rot%catalog.RotationCount]
	if blocked(front[0]) && blocked(front[1]) {
		return SpinTSpin
	}
	nose := origin.Add(tNose[p.Rot%catalog.RotationCount])
	if b.Occupied(nose.X, nose.Y) {
		return SpinTSpin
	}
	if last.LastKick && cat.Upgrades(last.Transition) {
		return SpinTSpin
	}
	return SpinMini
}
