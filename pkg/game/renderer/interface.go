package renderer

import (
	"hiro/pkg/engine/input"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
)

// Loop is the simulation a renderer drives.
type Loop interface {
	// Step advances one frame and returns false when the player quits.
	Step(f input.Frame) bool
	// Game is the state to draw after each step.
	Game() *state.Game
	// Scene lists the active level's visible objects.
	Scene() scenefile.Scene
}

// Renderer defines the interface for game rendering backends.
// Implementations include the terminal (tcell) and a window (ebiten).
type Renderer interface {
	// Init prepares the screen or window.
	Init() error

	// Run drives loop until it quits or the window is closed.
	Run(loop Loop) error

	// Close releases the screen. It is safe to call more than once.
	Close()
}
