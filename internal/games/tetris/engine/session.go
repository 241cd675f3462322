package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
)

// Phase is the state of the active piece.
type Phase uint8

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLanded
	PhaseLocked
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLanded:
		return "landed"
	case PhaseLocked:
		return "locked"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// LockResetPolicy decides what happens once a piece has used all its
// lock delay resets.
type LockResetPolicy uint8

const (
	// LockResetCap stops granting resets; the running timer still expires.
	LockResetCap LockResetPolicy = iota
	// LockResetForce locks the piece as soon as the cap is reached.
	LockResetForce
)

// Command is a discrete input event consumed by Update.
type Command uint8

const (
	CmdLeft Command = iota
	CmdRight
	CmdSoftDrop
	CmdHardDrop
	CmdRotateCW
	CmdRotateCCW
	CmdHold
	CmdPause
	CmdRestart
	CmdDebug
)

// Held is the continuous state of the repeatable inputs.
type Held struct {
	Left     bool
	Right    bool
	SoftDrop bool
}

// GravityCurve maps progress to the interval between gravity steps.
// *config.DifficultyManager satisfies it.
type GravityCurve interface {
	GravityInterval(base time.Duration, lines int, elapsed time.Duration) time.Duration
}

// Options configures a Session.
type Options struct {
	Catalog *catalog.Catalog
	Seed    int64

	Gravity   time.Duration // Base gravity interval
	SoftDrop  time.Duration // Gravity interval while soft drop is held
	LockDelay time.Duration
	DAS       time.Duration
	ARR       time.Duration

	MaxLockResets   int
	LockResetPolicy LockResetPolicy

	Preview  int // Queued pieces exposed by Preview
	SpawnX   int
	SpawnY   int
	LineGoal int // End the session successfully after this many lines; 0 disables

	Curve GravityCurve // Optional; nil keeps Gravity constant
}

// DefaultOptions returns guideline timing with the embedded catalog.
func DefaultOptions() Options {
	return Options{
		Catalog:       catalog.Default(),
		Gravity:       time.Second,
		SoftDrop:      50 * time.Millisecond,
		LockDelay:     500 * time.Millisecond,
		DAS:           170 * time.Millisecond,
		ARR:           50 * time.Millisecond,
		MaxLockResets: 15,
		Preview:       3,
		SpawnX:        3,
		SpawnY:        19,
	}
}

// Stats is a read-only summary of the session for the HUD and debug overlay.
type Stats struct {
	Score      int
	Lines      int
	Combo      int
	Pieces     int
	Elapsed    time.Duration
	Phase      Phase
	LandedFor  time.Duration
	LockResets int
	LastMove   MoveKind
	LastAward  Award
	Completed  bool
}

// Session owns one game: board, queue, active piece, hold slot and clocks.
// All mutation goes through its methods; it is not safe for concurrent use.
type Session struct {
	opts Options
	cat  *catalog.Catalog
	rng  *rand.Rand

	board   Board
	bag     *Bag
	active  Piece
	hold    catalog.PieceType
	canHold bool
	phase   Phase

	paused    bool
	debug     bool
	completed bool

	score  int
	lines  int
	combo  int
	pieces int

	elapsed      time.Duration
	gravityTimer time.Duration
	lockTimer    time.Duration
	lockResets   int
	softDropping bool

	lastMove  MoveKind
	lastRot   LastRotation
	lastAward Award

	shift  Repeater
	events []Event
}

// NewSession creates a session and spawns the first piece.
func NewSession(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	s := &Session{
		opts: opts,
		cat:  opts.Catalog,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
	s.Restart()
	return s
}

// Restart reinitializes all session state. The piece sequence continues
// from the same random stream.
func (s *Session) Restart() {
	s.board.Reset()
	s.bag = NewBag(s.rng, max(s.opts.Preview, catalog.PieceCount))
	s.hold = catalog.NoPiece
	s.canHold = true
	s.paused = false
	s.completed = false
	s.score, s.lines, s.combo, s.pieces = 0, 0, 0, 0
	s.elapsed = 0
	s.lastAward = Award{}
	s.softDropping = false
	s.shift = Repeater{Delay: s.opts.DAS, Interval: s.opts.ARR}
	s.events = s.events[:0]
	s.phase = PhaseSpawning
	s.spawn(s.bag.Next())
}

// spawn places a new piece of type t at the spawn position.
func (s *Session) spawn(t catalog.PieceType) {
	s.phase = PhaseSpawning
	s.active = Piece{Type: t, X: s.opts.SpawnX, Y: s.opts.SpawnY, Rot: catalog.RotSpawn}
	s.lastMove = MoveNone
	s.lastRot = LastRotation{}
	s.gravityTimer = 0
	s.lockTimer = 0
	s.lockResets = 0

	if s.collides(s.active) {
		s.phase = PhaseGameOver
		s.emit(Event{Kind: EventGameOver, Piece: t})
		return
	}
	s.phase = PhaseFalling
	s.emit(Event{Kind: EventSpawn, Piece: t})
	s.updateLanded()
}

// Spawn pops the next piece from the queue and places it.
func (s *Session) Spawn() {
	if s.phase == PhaseGameOver {
		return
	}
	s.spawn(s.bag.Next())
}

func (s *Session) collides(p Piece) bool {
	return s.board.Collides(s.cat.Shape(p.Type, p.Rot), p.X, p.Y)
}

// CheckCollision reports whether a piece of type t at (x, y) in rotation r
// would overlap the walls, the floor or locked cells.
func (s *Session) CheckCollision(x, y int, t catalog.PieceType, r catalog.Rotation) bool {
	return s.collides(Piece{Type: t, X: x, Y: y, Rot: r})
}

func (s *Session) playing() bool {
	return !s.paused && (s.phase == PhaseFalling || s.phase == PhaseLanded)
}

// updateLanded moves between Falling and Landed depending on whether the
// piece can fall. A fresh landing starts the lock timer.
func (s *Session) updateLanded() {
	resting := s.collides(s.active.Moved(0, 1))
	switch {
	case resting && s.phase == PhaseFalling:
		s.phase = PhaseLanded
		s.lockTimer = 0
	case !resting && s.phase == PhaseLanded:
		s.phase = PhaseFalling
		s.gravityTimer = 0
	}
}

// resetLockDelay restarts the lock timer after a successful shift or
// rotation made while landed, until the reset cap is reached.
func (s *Session) resetLockDelay(wasLanded bool) {
	if !wasLanded {
		return
	}
	if s.lockResets < s.opts.MaxLockResets {
		s.lockResets++
		s.lockTimer = 0
	}
}

// forceLockAtCap applies LockResetForce after a move.
func (s *Session) forceLockAtCap(wasLanded bool) {
	if !wasLanded || s.opts.LockResetPolicy != LockResetForce {
		return
	}
	if s.lockResets >= s.opts.MaxLockResets && s.phase == PhaseLanded {
		s.LockAndAdvance()
	}
}

// MoveHorizontal shifts the piece by dir (-1 or 1). A blocked move leaves
// the piece in place but still re-evaluates whether it is landed.
func (s *Session) MoveHorizontal(dir int) bool {
	if !s.playing() || dir == 0 {
		return false
	}
	wasLanded := s.phase == PhaseLanded

	next := s.active.Moved(dir, 0)
	if s.collides(next) {
		s.updateLanded()
		return false
	}
	s.active = next
	s.lastMove = MoveShift
	s.resetLockDelay(wasLanded)
	s.updateLanded()
	s.forceLockAtCap(wasLanded)
	return true
}

// SoftFall moves the piece down one row. When it cannot fall it is marked
// landed; locking is left to the lock delay or a hard drop.
func (s *Session) SoftFall() bool {
	if !s.playing() {
		return false
	}
	next := s.active.Moved(0, 1)
	if s.collides(next) {
		s.updateLanded()
		return false
	}
	s.active = next
	s.lastMove = MoveFall
	if s.softDropping {
		s.score += s.cat.Score.SoftDrop
	}
	s.updateLanded()
	return true
}

// HardDrop drops the piece as far as it goes and locks it. It returns the
// number of rows travelled.
func (s *Session) HardDrop() int {
	if !s.playing() {
		return 0
	}
	dist := 0
	for !s.collides(s.active.Moved(0, 1)) {
		s.active = s.active.Moved(0, 1)
		dist++
	}
	if dist > 0 {
		s.lastMove = MoveDrop
	}
	s.score += dist * s.cat.Score.HardDrop
	s.LockAndAdvance()
	return dist
}

// Rotate turns the piece in direction d, trying each kick candidate in
// order. The first candidate that fits wins; if none fits nothing changes.
func (s *Session) Rotate(d catalog.Direction) RotateResult {
	if !s.playing() {
		return RotateResult{}
	}
	wasLanded := s.phase == PhaseLanded

	from := s.active.Rot
	to := from.Turn(d)
	kicks := s.cat.Kicks(s.active.Type, from, d)
	for i, k := range kicks {
		cand := Piece{Type: s.active.Type, X: s.active.X + k.X, Y: s.active.Y + k.Y, Rot: to}
		if s.collides(cand) {
			continue
		}
		s.active = cand
		s.lastMove = MoveRotate
		s.lastRot = LastRotation{
			Transition: catalog.Transition{From: from, To: to},
			Kick:       i,
			LastKick:   i == len(kicks)-1,
		}
		s.resetLockDelay(wasLanded)
		s.updateLanded()
		s.forceLockAtCap(wasLanded)
		return RotateResult{OK: true, Kick: i, LastKick: s.lastRot.LastKick}
	}

	s.updateLanded()
	return RotateResult{}
}

// LockAndAdvance writes the piece into the board, clears lines, scores the
// lock and spawns the next piece.
func (s *Session) LockAndAdvance() {
	if s.phase != PhaseFalling && s.phase != PhaseLanded {
		return
	}
	p := s.active
	spin := ClassifySpin(&s.board, s.cat, p, s.lastMove, s.lastRot)

	s.board.Lock(s.cat.Shape(p.Type, p.Rot), p.X, p.Y, s.cat.ColorIndex(p.Type))
	s.phase = PhaseLocked
	s.pieces++

	lines := s.board.ClearAndCompact()
	if lines > 0 {
		s.combo++
	} else {
		s.combo = 0
	}
	points := Score(s.cat.Score, lines, spin, s.combo)
	s.score += points
	s.lines += lines

	award := Award{Lines: lines, Spin: spin, Combo: s.combo, Points: points}
	if !award.Zero() {
		s.lastAward = award
	}
	s.emit(Event{Kind: EventLock, Piece: p.Type, Award: award})

	s.lockResets = 0
	s.canHold = true

	if s.opts.LineGoal > 0 && s.lines >= s.opts.LineGoal {
		s.completed = true
		s.phase = PhaseGameOver
		s.emit(Event{Kind: EventComplete})
		return
	}
	s.spawn(s.bag.Next())
}

// Hold swaps the active piece with the hold slot, once per lock cycle.
// With an empty slot the next queued piece is spawned instead.
func (s *Session) Hold() bool {
	if !s.playing() || !s.canHold {
		return false
	}
	cur := s.active.Type
	next := s.hold
	if next == catalog.NoPiece {
		next = s.bag.Next()
	}
	s.hold = cur
	s.canHold = false
	s.emit(Event{Kind: EventHold, Piece: cur})
	s.spawn(next)
	return true
}

// SetPaused pauses or resumes the session. Time does not advance while paused.
func (s *Session) SetPaused(paused bool) {
	if s.phase == PhaseGameOver || s.paused == paused {
		return
	}
	s.paused = paused
	s.shift.Reset()
	if paused {
		s.emit(Event{Kind: EventPause})
	} else {
		s.emit(Event{Kind: EventResume})
	}
}

// TogglePause flips the pause flag.
func (s *Session) TogglePause() {
	s.SetPaused(!s.paused)
}

// ToggleDebug flips the debug overlay flag.
func (s *Session) ToggleDebug() {
	s.debug = !s.debug
}

// Update advances the session by dt. Discrete commands are applied first,
// then in order: held-direction auto-repeat, lock delay expiry, gravity.
func (s *Session) Update(dt time.Duration, cmds []Command, held Held) {
	for _, c := range cmds {
		s.apply(c, held)
	}
	if !s.playing() {
		return
	}

	s.elapsed += dt
	s.softDropping = held.SoftDrop

	// 1. Auto-repeat
	dir := 0
	switch {
	case held.Left && held.Right:
		dir = s.shift.Dir()
		if dir == 0 {
			dir = 1
		}
	case held.Left:
		dir = -1
	case held.Right:
		dir = 1
	}
	for range s.shift.Update(dir, dt) {
		if !s.MoveHorizontal(dir) {
			break
		}
	}
	if !s.playing() {
		return
	}

	// 2. Lock delay
	if s.phase == PhaseLanded {
		s.lockTimer += dt
		if s.lockTimer >= s.opts.LockDelay {
			s.LockAndAdvance()
		}
		return
	}

	// 3. Gravity
	s.gravityTimer += dt
	interval := s.GravityInterval()
	for s.phase == PhaseFalling && s.gravityTimer >= interval {
		s.gravityTimer -= interval
		s.SoftFall()
	}
	if s.phase != PhaseFalling {
		s.gravityTimer = 0
	}
}

func (s *Session) apply(c Command, held Held) {
	switch c {
	case CmdPause:
		s.TogglePause()
		return
	case CmdRestart:
		s.Restart()
		s.emit(Event{Kind: EventRestart})
		return
	case CmdDebug:
		s.ToggleDebug()
		return
	}
	if !s.playing() {
		return
	}

	switch c {
	case CmdLeft:
		s.MoveHorizontal(-1)
		s.shift.Press(-1)
	case CmdRight:
		s.MoveHorizontal(1)
		s.shift.Press(1)
	case CmdSoftDrop:
		s.softDropping = true
		s.SoftFall()
		s.softDropping = held.SoftDrop
		s.gravityTimer = 0
	case CmdHardDrop:
		s.HardDrop()
	case CmdRotateCW:
		s.Rotate(catalog.CW)
	case CmdRotateCCW:
		s.Rotate(catalog.CCW)
	case CmdHold:
		s.Hold()
	}
}

// GravityInterval returns the current time between gravity steps.
func (s *Session) GravityInterval() time.Duration {
	interval := s.opts.Gravity
	if s.opts.Curve != nil {
		interval = s.opts.Curve.GravityInterval(s.opts.Gravity, s.lines, s.elapsed)
	}
	if s.softDropping && s.opts.SoftDrop > 0 && s.opts.SoftDrop < interval {
		interval = s.opts.SoftDrop
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	return interval
}

// Board returns the locked cells. The board must not be modified.
func (s *Session) Board() *Board {
	return &s.board
}

// Catalog returns the data set the session plays with.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Active returns the falling piece.
func (s *Session) Active() Piece {
	return s.active
}

// Ghost returns the active piece moved to where a hard drop would lock it.
func (s *Session) Ghost() Piece {
	g := s.active
	for !s.collides(g.Moved(0, 1)) {
		g = g.Moved(0, 1)
	}
	return g
}

// HoldSlot returns the held piece, or catalog.NoPiece, and whether a swap is allowed.
func (s *Session) HoldSlot() (catalog.PieceType, bool) {
	return s.hold, s.canHold
}

// Preview returns the next n queued pieces.
func (s *Session) Preview(n int) []catalog.PieceType {
	return s.bag.Peek(n)
}

// Phase returns the state of the active piece.
func (s *Session) Phase() Phase {
	return s.phase
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// GameOver reports whether the session has ended, by top-out or by
// reaching the line goal.
func (s *Session) GameOver() bool {
	return s.phase == PhaseGameOver
}

// Debug reports whether the debug overlay is on.
func (s *Session) Debug() bool {
	return s.debug
}

// Stats returns the score and bookkeeping counters.
func (s *Session) Stats() Stats {
	st := Stats{
		Score:      s.score,
		Lines:      s.lines,
		Combo:      s.combo,
		Pieces:     s.pieces,
		Elapsed:    s.elapsed,
		Phase:      s.phase,
		LockResets: s.lockResets,
		LastMove:   s.lastMove,
		LastAward:  s.lastAward,
		Completed:  s.completed,
	}
	if s.phase == PhaseLanded {
		st.LandedFor = s.lockTimer
	}
	return st
}

// DrainEvents returns and clears the events recorded since the last call.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
