package core

import "time"

// RuntimeConfig is what the platform hands a mode on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns available to the mode
	ScreenH  int   // Terminal rows, minus the help line
	TickRate int   // Simulation ticks per second
	Seed     int64 // Bag shuffle seed; 0 asks the platform for a time-based one
}

// TickDuration returns the simulated time that passes per tick.
// A non-positive rate falls back to 60 ticks per second.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// ResolveSeed replaces a zero seed with one derived from now.
func (c RuntimeConfig) ResolveSeed(now time.Time) RuntimeConfig {
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	return c
}

// GameState is the summary a mode reports to the platform after each step.
type GameState struct {
	Score     int
	Lines     int
	Elapsed   time.Duration // Running clock; frozen while paused
	GameOver  bool          // Topped out, or the sprint goal was reached
	Completed bool          // Ended by reaching the line goal
	Paused    bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
