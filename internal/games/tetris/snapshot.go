package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// Snapshot contains the observable game state for replay checks and tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	Mode      int // 0=Marathon, 1=Sprint
	Score     int
	Lines     int
	Combo     int
	Pieces    int
	ElapsedMS int64
	Phase     string
	Paused    bool
	Completed bool

	// Active piece as Type, X, Y, Rotation
	Active [4]int

	// Held piece type, or -1 when the slot is empty
	Hold    int
	CanHold bool

	// Queued piece types, next first
	Queue []int

	// Board cells, row-major over all rows including the buffer zone
	Board []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	s := g.session
	st := s.Stats()
	a := s.Active()

	board := make([]int, 0, engine.Width*engine.Rows)
	b := s.Board()
	for y := range engine.Rows {
		for x := range engine.Width {
			board = append(board, b.Cell(x, y))
		}
	}

	preview := s.Preview(g.cfg.Rules.Preview)
	queue := make([]int, len(preview))
	for i, t := range preview {
		queue[i] = int(t)
	}

	held, canHold := s.HoldSlot()
	hold := -1
	if held.Valid() {
		hold = int(held)
	}

	return Snapshot{
		Tick:      g.tickCount,
		Mode:      int(g.mode),
		Score:     st.Score,
		Lines:     st.Lines,
		Combo:     st.Combo,
		Pieces:    st.Pieces,
		ElapsedMS: st.Elapsed.Milliseconds(),
		Phase:     st.Phase.String(),
		Paused:    s.Paused(),
		Completed: st.Completed,
		Active:    [4]int{int(a.Type), a.X, a.Y, int(a.Rot)},
		Hold:      hold,
		CanHold:   canHold,
		Queue:     queue,
		Board:     board,
	}
}
