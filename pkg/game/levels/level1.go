package levels

import (
	"fmt"
	"io"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/sequencer"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// memoryTexts is the number of L1_MEMORY_n entries in the catalogue.
const memoryTexts = 4

// Footstep is one mark of the level-1 trail.
type Footstep struct {
	Pos  world.Vec3
	Born float64
}

// Level1 is the ring walk: reach each glowing ring in order, read its memory,
// then return to the center portal.
type Level1 struct {
	cfg config.Level1
	Seq *sequencer.Sequencer

	Footsteps []Footstep
	lastStep  world.Vec3
}

// NewLevel1 creates the level. Nothing is built until Init.
func NewLevel1() *Level1 {
	return &Level1{}
}

// Init places the rings and shows the intro.
func (l *Level1) Init(g *state.Game) {
	l.cfg = g.Config.Clone().Level1

	spots := sequencer.PlaceSpots(l.cfg.Spots, g.Rng)
	portal := world.Zone{
		ID:     "center-portal",
		Radius: l.cfg.Spots.PortalRadius,
		Shape:  world.ShapeCircle,
	}
	l.Seq = sequencer.New(spots, portal)

	g.Actor.Place(world.V3(0, l.cfg.EyeHeight, 12), 0)
	l.Footsteps = l.Footsteps[:0]
	l.lastStep = g.Actor.Pos

	showIDs(g, state.PanelIntro, "L1_INTRO_TITLE", "L1_INTRO_BODY", "CONTINUE_HINT")
	l.updateHUD(g)
}

// Tick runs the ring checks for one frame.
func (l *Level1) Tick(g *state.Game, f input.Frame) {
	a := g.Actor
	a.ClampSquare(l.cfg.Clamp)
	l.updateFootsteps(g)

	if r, ok := l.Seq.Tick(a.Pos); ok {
		hint := "L1_MEMORY_HINT_NEXT"
		if r.Last {
			hint = "L1_MEMORY_HINT_LAST"
		}
		g.ShowPanel(state.PanelMemory,
			text.Get("L1_MEMORY_TITLE", r.Index+1),
			text.Get(fmt.Sprintf("L1_MEMORY_%d", r.Index%memoryTexts)),
			text.Get(hint))
	}

	if l.Seq.PortalReached(a.Pos) && g.PanelMode() != state.PanelPortalHint {
		showIDs(g, state.PanelPortalHint, "L1_PORTAL_TITLE", "L1_PORTAL_BODY", "CONTINUE_HINT")
	}
	l.updateHUD(g)
}

func (l *Level1) updateFootsteps(g *state.Game) {
	keep := l.Footsteps[:0]
	for _, s := range l.Footsteps {
		if g.Time-s.Born <= l.cfg.Footsteps.Lifetime {
			keep = append(keep, s)
		}
	}
	l.Footsteps = keep

	pos := g.Actor.Pos
	if world.DistXZ(pos, l.lastStep) <= l.cfg.Footsteps.Step {
		return
	}
	l.lastStep = pos
	jitter := l.cfg.Footsteps.Jitter
	mark := world.V3(
		pos.X+(g.Rng.Float64()-0.5)*jitter,
		0.02,
		pos.Z+(g.Rng.Float64()-0.5)*jitter,
	)
	l.Footsteps = append(l.Footsteps, Footstep{Pos: mark, Born: g.Time})
	if n := len(l.Footsteps) - l.cfg.Footsteps.Max; n > 0 {
		l.Footsteps = l.Footsteps[n:]
	}
}

func (l *Level1) updateHUD(g *state.Game) {
	if l.Seq.AllSeen {
		g.HUD = text.Get("L1_HUD_DONE")
		return
	}
	g.HUD = text.Get("L1_HUD", l.Seq.ActivatedCount, len(l.Seq.Spots))
}

// Handle has no level-specific actions.
func (l *Level1) Handle(g *state.Game, a input.Action) bool {
	return false
}

// Dismiss walks the intro into the controls hint, commits a read memory and
// leaves through the portal hint.
func (l *Level1) Dismiss(g *state.Game, mode state.PanelMode) {
	switch mode {
	case state.PanelIntro:
		showIDs(g, state.PanelHint, "L1_HINT_TITLE", "L1_HINT_BODY", "L1_HINT_HINT")
	case state.PanelMemory:
		g.ClearPanel()
		l.Seq.Dismiss()
		l.updateHUD(g)
	case state.PanelPortalHint:
		g.ClearPanel()
		g.RequestLevel(2)
	default:
		g.ClearPanel()
	}
}

// Cheat skips to level 2.
func (l *Level1) Cheat(g *state.Game) {
	g.ClearPanel()
	g.RequestLevel(2)
}

// Teardown drops the rings and trail.
func (l *Level1) Teardown(g *state.Game) {
	l.Seq = nil
	l.Footsteps = nil
}

// Scene lists the rings, the trail and, once every memory is seen, the portal.
func (l *Level1) Scene(g *state.Game) scenefile.Scene {
	s := scenefile.Scene{Cameras: camera(g)}
	s.Objects = append(s.Objects, floor(l.cfg.Clamp+2))
	if l.Seq == nil {
		return s
	}
	for _, z := range l.Seq.Spots {
		color := colorDim
		switch {
		case z.Activated:
			color = colorSeen
		case z.Index == l.Seq.CurrentTarget:
			color = colorPortal
		}
		s.Objects = append(s.Objects, scenefile.Sphere(z.Center, z.Radius, color))
	}
	for _, step := range l.Footsteps {
		s.Objects = append(s.Objects, scenefile.Sphere(step.Pos, 0.15, colorFootstep))
	}
	if l.Seq.AllSeen {
		s.Objects = append(s.Objects, scenefile.Sphere(l.Seq.Portal.Center, l.Seq.Portal.Radius, colorPortal))
	}
	return s
}

// Describe writes the ring state for a debug dump.
func (l *Level1) Describe(w io.Writer, g *state.Game) {
	describeActor(w, g)
	if l.Seq == nil {
		return
	}
	fmt.Fprintf(w, "phase: %s\n", l.Seq.Phase)
	fmt.Fprintf(w, "current_target: %d\n", l.Seq.CurrentTarget)
	fmt.Fprintf(w, "activated: %d / %d\n", l.Seq.ActivatedCount, len(l.Seq.Spots))
	fmt.Fprintf(w, "footsteps: %d\n", len(l.Footsteps))
	fmt.Fprintln(w, "spots:")
	for _, z := range l.Seq.Spots {
		fmt.Fprintf(w, "  index: %d x: %.2f z: %.2f activated: %v\n", z.Index, z.Center.X, z.Center.Z, z.Activated)
	}
}
