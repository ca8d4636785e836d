package levels

import (
	"fmt"
	"io"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/clues"
	"hiro/pkg/game/config"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// fillerTexts is the number of L2_NORMAL_n entries in the catalogue.
const fillerTexts = 6

// Level2 is the clue room: aim at the eyes on the wall until enough clues are
// found, then rise into the portal overhead.
type Level2 struct {
	cfg     config.Level2
	Tracker *clues.Tracker
}

// NewLevel2 creates the level. Nothing is built until Init.
func NewLevel2() *Level2 {
	return &Level2{}
}

// Init scatters the eyes and shows the intro.
func (l *Level2) Init(g *state.Game) {
	l.cfg = g.Config.Clone().Level2
	objects := clues.PlaceObjects(l.cfg.Clues, g.Rng)
	l.Tracker = clues.New(objects, l.cfg.Clues)

	g.Actor.Place(world.V3(0, l.cfg.EyeHeight, 0), 0)
	showIDs(g, state.PanelIntro, "L2_INTRO_TITLE", "L2_INTRO_BODY", "L2_INTRO_HINT")
	l.updateHUD(g)
}

// Tick keeps the actor near the center and watches the portal.
func (l *Level2) Tick(g *state.Game, f input.Frame) {
	g.Actor.ClampRadius(l.cfg.ActorRadius)
	l.Tracker.UpdateRadar(f.Dt)
	if l.Tracker.PortalTrigger(g.Actor.Pos) {
		g.ClearPanel()
		g.Aim = false
		g.RequestLevel(3)
	}
	l.updateHUD(g)
}

func (l *Level2) updateHUD(g *state.Game) {
	g.HUD = text.Get("L2_HUD", l.Tracker.CluesFound, l.Tracker.Required)
}

// Handle toggles aiming and inspects the eye under the crosshair.
func (l *Level2) Handle(g *state.Game, a input.Action) bool {
	switch a {
	case input.ActionAim:
		g.Aim = !g.Aim
		return true
	case input.ActionPrimary:
		if !g.Aim {
			return false
		}
		id := l.Tracker.Pick(g.Actor.Pos, g.Actor.Facing())
		l.present(g, l.Tracker.Interact(id, fillerTexts, g.Rng))
		return true
	}
	return false
}

func (l *Level2) present(g *state.Game, r clues.Result) {
	switch r.Outcome {
	case clues.OutcomeFiller:
		g.ShowPanel(state.PanelClue,
			text.Get("L2_FILLER_TITLE"),
			text.Get(fmt.Sprintf("L2_NORMAL_%d", r.FlavorIndex)),
			text.Get("L2_FILLER_HINT"))
	case clues.OutcomeReplayed:
		g.ShowPanel(state.PanelClue,
			text.Get("L2_REPLAY_TITLE"),
			text.Get(fmt.Sprintf("L2_CLUE_%d", r.ClueIndex)),
			text.Get("L2_REPLAY_HINT"))
	case clues.OutcomeDiscovered:
		if r.Completed {
			g.Aim = false
			showIDs(g, state.PanelIrisComplete, "L2_COMPLETE_TITLE", "L2_COMPLETE_BODY", "L2_COMPLETE_HINT")
			break
		}
		hint := "L2_FRAGMENT_HINT_MORE"
		if r.Found >= l.Tracker.Required {
			hint = "L2_FRAGMENT_HINT_DONE"
		}
		g.ShowPanel(state.PanelClue,
			text.Get("L2_FRAGMENT_TITLE", r.Found),
			text.Get(fmt.Sprintf("L2_CLUE_%d", r.ClueIndex)),
			text.Get(hint))
	}
	l.updateHUD(g)
}

// Dismiss leaves through the completion panel and otherwise just clears.
func (l *Level2) Dismiss(g *state.Game, mode state.PanelMode) {
	g.ClearPanel()
	if mode == state.PanelIrisComplete {
		g.Aim = false
		g.RequestLevel(3)
	}
}

// Cheat skips to level 3.
func (l *Level2) Cheat(g *state.Game) {
	l.Tracker.Complete()
	g.ClearPanel()
	g.RequestLevel(3)
}

// Teardown drops the eyes.
func (l *Level2) Teardown(g *state.Game) {
	l.Tracker = nil
}

// Scene lists every eye, pulsing clues while the radar rings, and the portal
// once it has opened.
func (l *Level2) Scene(g *state.Game) scenefile.Scene {
	s := scenefile.Scene{Cameras: camera(g)}
	s.Objects = append(s.Objects, floor(l.cfg.Clues.RoomRadius))
	if l.Tracker == nil {
		return s
	}
	for _, o := range l.Tracker.Objects {
		color := colorEye
		if o.Kind == clues.KindClue && o.Discovered {
			color = colorClue
		}
		r := o.Radius
		if scale, _, ok := l.Tracker.Pulse(o.ID); ok {
			r *= scale
		}
		s.Objects = append(s.Objects, scenefile.Sphere(o.Position, r, color))
	}
	if l.Tracker.PortalOpen {
		p := l.Tracker.Portal
		s.Objects = append(s.Objects, scenefile.Sphere(p.Center, p.Radius, colorPortal))
	}
	return s
}

// Describe writes the hunt's progress for a debug dump.
func (l *Level2) Describe(w io.Writer, g *state.Game) {
	describeActor(w, g)
	if l.Tracker == nil {
		return
	}
	fmt.Fprintf(w, "objects: %d\n", len(l.Tracker.Objects))
	fmt.Fprintf(w, "clues_found: %d / %d\n", l.Tracker.CluesFound, l.Tracker.Required)
	fmt.Fprintf(w, "portal_open: %v\n", l.Tracker.PortalOpen)
	fmt.Fprintf(w, "aim: %v\n", g.Aim)
	fmt.Fprintln(w, "clues:")
	for _, o := range l.Tracker.Objects {
		if o.Kind != clues.KindClue {
			continue
		}
		fmt.Fprintf(w, "  id: %d index: %d discovered: %v at: %.2f,%.2f,%.2f\n",
			o.ID, o.ClueIndex, o.Discovered, o.Position.X, o.Position.Y, o.Position.Z)
	}
}
