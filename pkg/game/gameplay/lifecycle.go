// Package gameplay runs the level sequence: it owns the active level, routes
// each input frame through it and performs level transitions.
package gameplay

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"hiro/pkg/engine/input"
	"hiro/pkg/game/config"
	"hiro/pkg/game/levels"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// Level is one playable stage.
type Level interface {
	Init(g *state.Game)
	Tick(g *state.Game, f input.Frame)
	// Handle reports whether the level used the action.
	Handle(g *state.Game, a input.Action) bool
	Teardown(g *state.Game)
	Cheat(g *state.Game)
	// Dismiss is called on Confirm while a panel of the given mode is open.
	Dismiss(g *state.Game, mode state.PanelMode)
}

// SceneSource is implemented by levels that can list their visible objects.
type SceneSource interface {
	Scene(g *state.Game) scenefile.Scene
}

// Orchestrator owns the registered levels and the active one.
type Orchestrator struct {
	g       *state.Game
	levels  map[int]Level
	current Level

	// DumpDir receives state dumps and scene exports. Empty means the
	// working directory.
	DumpDir string
}

// New creates an orchestrator with no levels registered.
func New(g *state.Game) *Orchestrator {
	return &Orchestrator{g: g, levels: make(map[int]Level)}
}

// NewDefault creates an orchestrator with the four stock levels.
func NewDefault(g *state.Game) *Orchestrator {
	o := New(g)
	o.levels[1] = levels.NewLevel1()
	o.levels[2] = levels.NewLevel2()
	o.levels[3] = levels.NewLevel3()
	o.levels[4] = levels.NewLevel4()
	return o
}

// Register adds level l under number n.
func (o *Orchestrator) Register(n int, l Level) error {
	if l == nil {
		return fmt.Errorf("gameplay: level %d is nil", n)
	}
	if n < 1 {
		return fmt.Errorf("gameplay: level number %d must be positive", n)
	}
	if _, ok := o.levels[n]; ok {
		return fmt.Errorf("gameplay: level %d already registered", n)
	}
	o.levels[n] = l
	return nil
}

// Validate reports gaps in the level numbering.
func (o *Orchestrator) Validate() error {
	if len(o.levels) == 0 {
		return errors.New("gameplay: no levels registered")
	}
	nums := make([]int, 0, len(o.levels))
	for n := range o.levels {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var missing []int
	for n := 1; n < nums[len(nums)-1]; n++ {
		if _, ok := o.levels[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("gameplay: missing levels %v", missing)
	}
	return nil
}

// Game returns the shared state.
func (o *Orchestrator) Game() *state.Game {
	return o.g
}

// Current returns the active level, or nil before the first Goto.
func (o *Orchestrator) Current() Level {
	return o.current
}

// Goto tears down the active level and starts level n. When n is not
// registered an error panel is shown and the active level keeps running.
func (o *Orchestrator) Goto(n int) bool {
	g := o.g
	next, ok := o.levels[n]
	if !ok {
		log.Printf("Level %d is not registered", n)
		g.ShowPanel(state.PanelError,
			text.Get("LEVEL_MISSING_TITLE", n),
			text.Get("LEVEL_MISSING_BODY", n),
			text.Get("LEVEL_MISSING_HINT"))
		return false
	}

	if o.current != nil {
		o.current.Teardown(g)
		log.Printf("Level %d torn down", g.Level)
	}
	g.EnterLevel(n)
	g.ClearPanel()
	g.Actor.Tuning = g.Config.Actor
	o.current = next
	next.Init(g)
	log.Printf("Level %d started (seed %d)", n, g.Seed)
	logMessage(g, "MSG_LEVEL", fmt.Sprintf("Level %d", n))
	return true
}

// Advance moves to the level after the current one.
func (o *Orchestrator) Advance() bool {
	return o.Goto(o.g.Level + 1)
}

// Restart replays from level 1.
func (o *Orchestrator) Restart() bool {
	return o.Goto(1)
}

// SetConfig swaps the shared tunables. Levels read them at init, so the
// change shows from the next level on.
func (o *Orchestrator) SetConfig(cfg *config.Config) {
	o.g.Config = cfg
	if unknown := input.ApplyOverrides(cfg.Bindings); len(unknown) > 0 {
		log.Printf("Ignoring unknown actions in bindings: %v", unknown)
	}
	log.Printf("Config reloaded")
	logMessage(o.g, "MSG_CONFIG")
}

// Scene lists what the active level shows.
func (o *Orchestrator) Scene() scenefile.Scene {
	if src, ok := o.current.(SceneSource); ok {
		return src.Scene(o.g)
	}
	return scenefile.Scene{}
}

// applyRequest performs a transition a level asked for.
func (o *Orchestrator) applyRequest() {
	if n, ok := o.g.TakeRequest(); ok {
		o.Goto(n)
	}
}

// logMessage adds a catalogue message to the game's message log. Markup in
// the text is left for the renderer to style.
func logMessage(g *state.Game, id string, a ...any) {
	g.AddMessage(text.Get(id, a...))
}
