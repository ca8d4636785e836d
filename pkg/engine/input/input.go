package input

import (
	"time"
)

// Frame is everything the simulation reads from the player for one tick.
type Frame struct {
	Dt float64

	// Forward and Strafe are in [-1, 1].
	Forward float64
	Strafe  float64
	Sprint  bool

	// Pointer deltas in screen pixels.
	LookDX float64
	LookDY float64

	// Edge-triggered actions in the order they arrived.
	Actions []Action
}

// Has reports whether the edge action fired this tick.
func (f Frame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// keyboardLookSpeed converts held look keys into pointer pixels per second.
const keyboardLookSpeed = 900.0

// Builder collects held actions and edges from a device layer and turns
// them into a Frame once per tick.
type Builder struct {
	held  map[Action]bool
	edges []Action
	dx    float64
	dy    float64
}

// NewBuilder creates an empty frame builder.
func NewBuilder() *Builder {
	return &Builder{held: make(map[Action]bool)}
}

// SetHeld records whether a held action is currently down.
func (b *Builder) SetHeld(a Action, down bool) {
	b.held[a] = down
}

// Press records an edge. Held actions passed here are ignored.
func (b *Builder) Press(a Action) {
	if a == ActionNone || a.Held() {
		return
	}
	b.edges = append(b.edges, a)
}

// AddLook accumulates pointer movement.
func (b *Builder) AddLook(dx, dy float64) {
	b.dx += dx
	b.dy += dy
}

// Build produces the frame for a tick of length dt and clears edges and
// pointer deltas.
func (b *Builder) Build(dt float64) Frame {
	f := Frame{
		Dt:      dt,
		Forward: axis(b.held[ActionMoveForward], b.held[ActionMoveBack]),
		Strafe:  axis(b.held[ActionMoveRight], b.held[ActionMoveLeft]),
		Sprint:  b.held[ActionSprint],
		LookDX:  b.dx + axis(b.held[ActionLookRight], b.held[ActionLookLeft])*keyboardLookSpeed*dt,
		LookDY:  b.dy + axis(b.held[ActionLookDown], b.held[ActionLookUp])*keyboardLookSpeed*dt,
		Actions: b.edges,
	}
	b.edges = nil
	b.dx, b.dy = 0, 0
	return f
}

func axis(pos, neg bool) float64 {
	v := 0.0
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// DefaultHoldTime is how long a terminal key press counts as held. Terminals
// report presses and auto-repeat but never releases.
const DefaultHoldTime = 180 * time.Millisecond

// HoldTracker turns press-only key streams into held state by expiring each
// press after a fixed time.
type HoldTracker struct {
	hold  time.Duration
	until map[Action]time.Time
}

// NewHoldTracker creates a tracker that keeps a press alive for hold.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	return &HoldTracker{hold: hold, until: make(map[Action]time.Time)}
}

// Press extends the held window of a for another hold period from now.
func (h *HoldTracker) Press(a Action, now time.Time) {
	h.until[a] = now.Add(h.hold)
}

// Release drops a immediately.
func (h *HoldTracker) Release(a Action) {
	delete(h.until, a)
}

// Apply writes the current held state of every tracked action into b.
func (h *HoldTracker) Apply(b *Builder, now time.Time) {
	for a, t := range h.until {
		down := now.Before(t)
		b.SetHeld(a, down)
		if !down {
			delete(h.until, a)
		}
	}
}
