package levels

import (
	"fmt"
	"io"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
	"hiro/pkg/game/orbs"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// Special orb colors.
var specialColors = map[orbs.Key]uint32{
	orbs.KeyA: 0xff4d6d,
	orbs.KeyB: 0x4dd2ff,
	orbs.KeyC: 0xffd35b,
}

// Level4 is the orb room: pop orbs with the bat or thrown balls until the
// three marked ones are found.
type Level4 struct {
	cfg   config.Level4
	Field *orbs.Field
}

// NewLevel4 creates the level. Nothing is built until Init.
func NewLevel4() *Level4 {
	return &Level4{}
}

// Init fills the room and shows the intro.
func (l *Level4) Init(g *state.Game) {
	l.cfg = g.Config.Clone().Level4
	l.Field = orbs.Spawn(l.cfg.Orbs, g.Rng)
	g.Actor.Place(world.V3(0, 2, l.cfg.Orbs.RoomHalf-10), 0)
	showIDs(g, state.PanelIntro, "L4_INTRO_TITLE", "L4_INTRO_BODY", "L4_INTRO_HINT")
	l.updateHUD(g)
}

// Tick advances the orbs and any balls in flight.
func (l *Level4) Tick(g *state.Game, f input.Frame) {
	g.Actor.ClampSquare(l.cfg.Orbs.RoomHalf - l.cfg.ClampMargin)
	for _, p := range l.Field.Step(f.Dt, g.Actor.Pos) {
		l.present(g, p)
	}
	l.updateHUD(g)
}

func onOff(v bool) string {
	if v {
		return text.Get("ON")
	}
	return text.Get("OFF")
}

func (l *Level4) updateHUD(g *state.Game) {
	g.HUD = text.Get("L4_HUD", l.Field.Found.Count, l.cfg.Orbs.Required) + "  " +
		text.Get("L4_HUD_MODES", onOff(l.Field.Equipped), onOff(l.Field.ThrowMode))
}

// Handle switches between bat and throw and fires the active one.
func (l *Level4) Handle(g *state.Game, a input.Action) bool {
	f := l.Field
	switch a {
	case input.ActionToggleWeapon:
		if !f.ToggleWeapon() {
			return false
		}
		if f.Equipped {
			showIDs(g, state.PanelInfo, "L4_BAT_ON_TITLE", "L4_BAT_ON_BODY", "L4_BAT_ON_HINT")
		} else {
			showIDs(g, state.PanelInfo, "L4_BAT_OFF_TITLE", "L4_BAT_OFF_BODY", "L4_BAT_OFF_HINT")
		}
	case input.ActionToggleThrow:
		if !f.ToggleThrow() {
			return false
		}
		g.Aim = false
		if f.ThrowMode {
			showIDs(g, state.PanelInfo, "L4_THROW_ON_TITLE", "L4_THROW_ON_BODY", "L4_THROW_ON_HINT")
		} else {
			showIDs(g, state.PanelInfo, "L4_THROW_OFF_TITLE", "L4_THROW_OFF_BODY", "L4_THROW_OFF_HINT")
		}
	case input.ActionAim:
		if !f.ThrowMode {
			return false
		}
		g.Aim = !g.Aim
	case input.ActionPrimary:
		if f.ThrowMode && g.Aim {
			return f.Throw(g.Actor.Pos, g.Actor.Facing())
		}
		p, ok := f.Swing(g.Actor.Pos, g.Actor.Facing())
		if ok {
			l.present(g, p)
		}
		return ok
	default:
		return false
	}
	l.updateHUD(g)
	return true
}

// present shows the panel for a popped orb. A plain orb's reflection never
// hides a choice or the ending.
func (l *Level4) present(g *state.Game, p orbs.Pop) {
	req := l.cfg.Orbs.Required
	switch {
	case p.Finished:
		l.showEnding(g)
	case p.NewFind:
		g.ShowPanel(state.PanelChoice,
			text.Get("L4_CHOICE_TITLE"),
			text.Get("L4_CHOICE_"+p.Key.String()),
			text.Get("L4_CHOICE_HINT", p.Count, req))
	case p.Key == orbs.KeyNone:
		switch g.PanelMode() {
		case state.PanelChoice, state.PanelEnding:
			return
		}
		g.ShowPanel(state.PanelReflection,
			text.Get("L4_SHATTER_TITLE"),
			text.Get("L4_SHATTER_BODY"),
			text.Get("L4_SHATTER_HINT", p.Count, req))
	}
}

func (l *Level4) showEnding(g *state.Game) {
	g.Aim = false
	g.CanReplay = true
	showIDs(g, state.PanelEnding, "L4_END_TITLE", "L4_END_BODY", "L4_END_HINT")
}

// Dismiss clears the panel. The ending can be dismissed but replay stays
// available.
func (l *Level4) Dismiss(g *state.Game, mode state.PanelMode) {
	g.ClearPanel()
}

// Cheat finds every marked orb and shows the ending.
func (l *Level4) Cheat(g *state.Game) {
	if l.Field.FindAll() {
		l.showEnding(g)
	}
	l.updateHUD(g)
}

// Teardown drops the field.
func (l *Level4) Teardown(g *state.Game) {
	l.Field = nil
}

// Scene lists the live orbs, balls in flight and the room walls.
func (l *Level4) Scene(g *state.Game) scenefile.Scene {
	s := scenefile.Scene{Cameras: camera(g)}
	half := l.cfg.Orbs.RoomHalf
	height := l.cfg.Orbs.WallHeight
	s.Objects = append(s.Objects, floor(half))
	for _, w := range []struct{ center, size world.Vec3 }{
		{world.V3(0, height/2, -half), world.V3(half*2, height, 0.4)},
		{world.V3(0, height/2, half), world.V3(half*2, height, 0.4)},
		{world.V3(-half, height/2, 0), world.V3(0.4, height, half*2)},
		{world.V3(half, height/2, 0), world.V3(0.4, height, half*2)},
	} {
		s.Objects = append(s.Objects, scenefile.Cube(w.center, w.size, colorWall))
	}
	if l.Field == nil {
		return s
	}
	for _, o := range l.Field.Orbs {
		if o.Popped {
			continue
		}
		color, ok := specialColors[o.Special]
		if !ok {
			color = colorOrb
		}
		s.Objects = append(s.Objects, scenefile.Sphere(o.Pos, o.Radius, color))
	}
	for _, p := range l.Field.Projectiles {
		s.Objects = append(s.Objects, scenefile.Sphere(p.Pos, 0.12, colorBall))
	}
	return s
}

// Describe writes the field for a debug dump.
func (l *Level4) Describe(w io.Writer, g *state.Game) {
	describeActor(w, g)
	if l.Field == nil {
		return
	}
	f := l.Field
	fmt.Fprintf(w, "live_orbs: %d / %d\n", f.Live(), len(f.Orbs))
	fmt.Fprintf(w, "found: %d / %d\n", f.Found.Count, l.cfg.Orbs.Required)
	fmt.Fprintf(w, "complete: %v\n", f.Complete)
	fmt.Fprintf(w, "bat: %v throw: %v aim: %v\n", f.Equipped, f.ThrowMode, g.Aim)
	fmt.Fprintf(w, "projectiles: %d\n", len(f.Projectiles))
	fmt.Fprintln(w, "specials:")
	for _, k := range orbs.Keys {
		i := f.Special(k)
		if i < 0 {
			continue
		}
		o := f.Orbs[i]
		fmt.Fprintf(w, "  key: %s found: %v at: %.2f,%.2f,%.2f\n", k, f.Found.Has(k), o.Pos.X, o.Pos.Y, o.Pos.Z)
	}
}
