package state

import (
	"math/rand"

	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
)

// PanelMode says which narrative panel is on screen and what Confirm does
// with it.
type PanelMode int

// Panel modes
const (
	PanelNone PanelMode = iota
	PanelIntro
	PanelHint
	PanelMemory
	PanelPortalHint
	PanelClue
	PanelIrisComplete
	PanelInfo
	PanelConnection
	PanelChoice
	PanelReflection
	PanelEnding
	PanelError
)

var panelModeNames = map[PanelMode]string{
	PanelNone:         "none",
	PanelIntro:        "intro",
	PanelHint:         "hint",
	PanelMemory:       "memory",
	PanelPortalHint:   "portal-hint",
	PanelClue:         "clue",
	PanelIrisComplete: "iris-complete",
	PanelInfo:         "info",
	PanelConnection:   "connection",
	PanelChoice:       "choice",
	PanelReflection:   "reflection",
	PanelEnding:       "ending",
	PanelError:        "error",
}

func (m PanelMode) String() string {
	if name, ok := panelModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Panel is the single narrative overlay.
type Panel struct {
	Mode  PanelMode
	Title string
	Body  string
	Hint  string
}

// Visible reports whether anything is on screen.
func (p Panel) Visible() bool {
	return p.Mode != PanelNone
}

// Game represents everything the renderers read between ticks
type Game struct {
	Actor *world.Actor

	Panel Panel

	Messages []string

	// HUD is the level's one-line status, e.g. "Clues found: 1 / 3".
	HUD string

	Level int // Current level number

	// Aim shows the crosshair and routes the primary button to level actions.
	Aim bool

	// CanReplay is set by the ending and enables the replay key.
	CanReplay bool

	Seed int64
	Rng  *rand.Rand

	// Time is seconds simulated since the game started.
	Time float64

	// Config is the shared tunables. Levels clone what they need at init.
	Config *config.Config

	pendingLevel int
}

// NewGame creates a new game instance seeded with seed
func NewGame(seed int64) *Game {
	return &Game{
		Actor:    world.NewActor(world.V3(0, 5, 0), world.DefaultActorTuning()),
		Messages: make([]string, 0),
		Level:    1,
		Seed:     seed,
		Rng:      rand.New(rand.NewSource(seed)),
		Config:   config.Default(),
	}
}

// ShowPanel replaces the current panel.
func (g *Game) ShowPanel(mode PanelMode, title, body, hint string) {
	g.Panel = Panel{Mode: mode, Title: title, Body: body, Hint: hint}
}

// ClearPanel hides the panel.
func (g *Game) ClearPanel() {
	g.Panel = Panel{}
}

// PanelMode returns the mode of the panel on screen.
func (g *Game) PanelMode() PanelMode {
	return g.Panel.Mode
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// EnterLevel resets the per-level parts of the state.
func (g *Game) EnterLevel(n int) {
	g.Level = n
	g.Aim = false
	g.HUD = ""
	g.CanReplay = false
}

// RequestLevel asks for a transition to level n once the current tick is
// done. A later request in the same tick replaces an earlier one.
func (g *Game) RequestLevel(n int) {
	g.pendingLevel = n
}

// TakeRequest returns and clears the pending transition.
func (g *Game) TakeRequest() (int, bool) {
	n := g.pendingLevel
	g.pendingLevel = 0
	return n, n != 0
}
