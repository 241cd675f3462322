package engine

import "github.com/vovakirdan/tui-tetris/internal/catalog"

// EventKind identifies something the session did during Update.
type EventKind uint8

const (
	EventSpawn EventKind = iota
	EventLock
	EventHold
	EventGameOver
	EventComplete
	EventPause
	EventResume
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventLock:
		return "lock"
	case EventHold:
		return "hold"
	case EventGameOver:
		return "game_over"
	case EventComplete:
		return "complete"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is recorded by the session for the game layer to log or display.
type Event struct {
	Kind  EventKind
	Piece catalog.PieceType
	Award Award // Set for EventLock
}
