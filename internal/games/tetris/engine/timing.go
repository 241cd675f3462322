package engine

import "time"

// Repeater turns a held direction into repeated moves: one move on press,
// the first repeat after Delay, then one every Interval. An Interval of
// zero moves to the wall at once.
type Repeater struct {
	Delay    time.Duration
	Interval time.Duration

	dir     int
	held    time.Duration
	charged bool
}

// Dir returns the direction currently held, or 0.
func (r *Repeater) Dir() int {
	return r.dir
}

// Press starts a new hold in dir without producing a move. The caller has
// already performed the press move.
func (r *Repeater) Press(dir int) {
	r.dir = dir
	r.held = 0
	r.charged = false
}

// Reset forgets the current hold.
func (r *Repeater) Reset() {
	r.Press(0)
}

// Update advances the hold by dt and returns the number of moves due in
// direction dir. A dir of 0 means released.
func (r *Repeater) Update(dir int, dt time.Duration) int {
	if dir == 0 {
		r.Reset()
		return 0
	}
	if dir != r.dir {
		r.Press(dir)
		return 1
	}

	r.held += dt
	moves := 0
	if !r.charged {
		if r.held < r.Delay {
			return 0
		}
		r.held -= r.Delay
		r.charged = true
		moves = 1
	}
	if r.Interval <= 0 {
		r.held = 0
		return Width
	}
	for r.held >= r.Interval && moves < Width {
		r.held -= r.Interval
		moves++
	}
	return moves
}
