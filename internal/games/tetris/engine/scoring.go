package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
)

// Score returns the points for a lock that cleared lines with the given
// spin while the combo counter is at combo. The base value is multiplied by
// the combo counter once it exceeds the table's combo base.
func Score(t catalog.ScoreTable, lines int, spin SpinKind, combo int) int {
	base := 0
	switch spin {
	case SpinTSpin:
		if lines >= 0 && lines < len(t.TSpin) {
			base = t.TSpin[lines]
		}
	case SpinMini:
		switch {
		case lines >= 0 && lines < len(t.TSpinMini):
			base = t.TSpinMini[lines]
		case lines < len(t.TSpin):
			base = t.TSpin[lines]
		}
	default:
		if lines >= 1 && lines <= len(t.Lines) {
			base = t.Lines[lines-1]
		}
	}

	if combo > t.ComboBase {
		base *= combo
	}
	return base
}

// Award describes the scoring outcome of one lock.
type Award struct {
	Lines  int
	Spin   SpinKind
	Combo  int
	Points int
}

// Zero reports whether the lock earned nothing worth announcing.
func (a Award) Zero() bool {
	return a.Lines == 0 && a.Spin == SpinNone
}

var lineNames = [...]string{"", "SINGLE", "DOUBLE", "TRIPLE", "TETRIS"}

// Label returns the HUD text for the award, e.g. "T-SPIN DOUBLE 3x COMBO".
func (a Award) Label() string {
	var parts []string
	if a.Spin != SpinNone {
		parts = append(parts, a.Spin.String())
	}
	if a.Lines > 0 && a.Lines < len(lineNames) {
		parts = append(parts, lineNames[a.Lines])
	}
	if a.Combo > 1 {
		parts = append(parts, fmt.Sprintf("%dx COMBO", a.Combo))
	}
	return strings.Join(parts, " ")
}
