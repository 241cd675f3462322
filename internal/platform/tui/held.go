package tui

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultHoldTimeout is how long a key counts as held after its last event.
// It stays below the default DAS so a single tap never auto-repeats.
const DefaultHoldTimeout = 150 * time.Millisecond

// DefaultRepeatWindow is the longest gap between two events of one key that
// still reads as terminal auto-repeat. Slower events are separate taps.
const DefaultRepeatWindow = 60 * time.Millisecond

type heldKey struct {
	last      time.Time
	streaming bool // A repeat has been seen since the press
}

// HeldKeys infers held keys from the terminal's key repeat stream.
// Terminals do not report key releases, so a key is released once no event
// for it has arrived within the timeout.
type HeldKeys struct {
	timeout time.Duration
	window  time.Duration
	keys    map[core.Action]heldKey
}

// NewHeldKeys creates a tracker with the given release timeout.
func NewHeldKeys(timeout time.Duration) *HeldKeys {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HeldKeys{
		timeout: timeout,
		window:  min(DefaultRepeatWindow, timeout),
		keys:    make(map[core.Action]heldKey),
	}
}

// Press records a key event for a at now. It returns true for a new press
// and false for terminal auto-repeat. An event is a repeat when it follows
// the previous one within the repeat window, or when the key is already
// streaming repeats and has not been released. Actions that cannot be held
// always count as new presses.
func (h *HeldKeys) Press(a core.Action, now time.Time) bool {
	if !a.Holdable() {
		return true
	}
	k, held := h.keys[a]
	gap := now.Sub(k.last)
	if held && gap <= h.timeout && (k.streaming || gap <= h.window) {
		h.keys[a] = heldKey{last: now, streaming: true}
		return false
	}
	h.keys[a] = heldKey{last: now}
	return true
}

// Expire releases keys whose last event is older than the timeout.
func (h *HeldKeys) Expire(now time.Time) {
	for a, k := range h.keys {
		if now.Sub(k.last) > h.timeout {
			delete(h.keys, a)
		}
	}
}

// IsHeld reports whether a is currently held.
func (h *HeldKeys) IsHeld(a core.Action) bool {
	_, ok := h.keys[a]
	return ok
}

// ReleaseAll forgets every held key.
func (h *HeldKeys) ReleaseAll() {
	clear(h.keys)
}

// Apply copies the held state of the repeatable actions into frame.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionSoftDrop} {
		frame.SetHeld(a, h.IsHeld(a))
	}
}
