package levels

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/clues"
	"hiro/pkg/game/orbs"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

func tick(dt float64) input.Frame {
	return input.Frame{Dt: dt}
}

func wantPanel(t *testing.T, g *state.Game, mode state.PanelMode, titleID string, args ...any) {
	t.Helper()
	if g.PanelMode() != mode {
		t.Fatalf("panel mode = %s, want %s", g.PanelMode(), mode)
	}
	if want := text.Get(titleID, args...); g.Panel.Title != want {
		t.Fatalf("panel title = %q, want %q", g.Panel.Title, want)
	}
}

func wantRequest(t *testing.T, g *state.Game, want int) {
	t.Helper()
	n, ok := g.TakeRequest()
	if !ok || n != want {
		t.Fatalf("TakeRequest() = %d, %v, want %d", n, ok, want)
	}
}

func TestLevel1Walkthrough(t *testing.T) {
	g := state.NewGame(7)
	l := NewLevel1()
	l.Init(g)
	wantPanel(t, g, state.PanelIntro, "L1_INTRO_TITLE")

	l.Dismiss(g, state.PanelIntro)
	wantPanel(t, g, state.PanelHint, "L1_HINT_TITLE")
	l.Dismiss(g, state.PanelHint)
	if g.Panel.Visible() {
		t.Fatal("hint panel still visible")
	}

	for i := range l.Seq.Spots {
		spot := l.Seq.Spots[i].Center
		g.Actor.Pos = world.V3(spot.X, g.Actor.Pos.Y, spot.Z)
		l.Tick(g, tick(0.1))
		wantPanel(t, g, state.PanelMemory, "L1_MEMORY_TITLE", i+1)

		// The panel suppresses further reveals.
		l.Tick(g, tick(0.1))
		l.Dismiss(g, state.PanelMemory)
		if l.Seq.ActivatedCount != i+1 {
			t.Fatalf("after spot %d activated = %d", i, l.Seq.ActivatedCount)
		}
	}
	if g.HUD != text.Get("L1_HUD_DONE") {
		t.Errorf("HUD = %q", g.HUD)
	}
	if _, ok := g.TakeRequest(); ok {
		t.Fatal("level requested before the portal")
	}

	g.Actor.Pos = world.V3(0, g.Actor.Pos.Y, 0)
	l.Tick(g, tick(0.1))
	wantPanel(t, g, state.PanelPortalHint, "L1_PORTAL_TITLE")
	l.Dismiss(g, state.PanelPortalHint)
	wantRequest(t, g, 2)
}

func TestLevel1FootstepsAreBounded(t *testing.T) {
	g := state.NewGame(1)
	l := NewLevel1()
	l.Init(g)
	g.Actor.Pos = world.V3(-20, 5, 20)
	for i := 0; i < 60; i++ {
		g.Time += 0.1
		g.Actor.Pos.X += 0.7
		l.Tick(g, tick(0.1))
	}
	if n := len(l.Footsteps); n == 0 || n > 16 {
		t.Fatalf("footsteps = %d, want 1..16", n)
	}

	g.Time += 11
	l.Tick(g, tick(0.1))
	if n := len(l.Footsteps); n != 0 {
		t.Errorf("expired footsteps kept: %d", n)
	}
}

func TestLevel1Cheat(t *testing.T) {
	g := state.NewGame(1)
	l := NewLevel1()
	l.Init(g)
	l.Cheat(g)
	if g.Panel.Visible() {
		t.Error("cheat left the panel up")
	}
	wantRequest(t, g, 2)
}

// oneClueRoom replaces the scattered eyes with a single clue straight ahead
// of the actor and a filler one behind it.
func oneClueRoom(l *Level2, g *state.Game, required int) {
	tuning := l.cfg.Clues
	tuning.Required = required
	objects := []clues.Object{
		{ID: 0, Kind: clues.KindClue, ClueIndex: 1, Position: world.V3(0, 5, -8), Radius: 0.5},
		{ID: 1, Kind: clues.KindNormal, Position: world.V3(0, 5, 8), Radius: 0.5},
	}
	l.Tracker = clues.New(objects, tuning)
	g.Actor.Place(world.V3(0, 5, 0), 0)
}

func TestLevel2Discovery(t *testing.T) {
	g := state.NewGame(3)
	l := NewLevel2()
	l.Init(g)
	wantPanel(t, g, state.PanelIntro, "L2_INTRO_TITLE")
	oneClueRoom(l, g, 2)

	if l.Handle(g, input.ActionPrimary) {
		t.Fatal("primary without aim was handled")
	}
	if !l.Handle(g, input.ActionAim) || !g.Aim {
		t.Fatal("aim did not toggle on")
	}

	l.Handle(g, input.ActionPrimary)
	wantPanel(t, g, state.PanelClue, "L2_FRAGMENT_TITLE", 1)
	if g.Panel.Body != text.Get("L2_CLUE_1") {
		t.Errorf("body = %q", g.Panel.Body)
	}
	l.Dismiss(g, state.PanelClue)

	l.Handle(g, input.ActionPrimary)
	wantPanel(t, g, state.PanelClue, "L2_REPLAY_TITLE")
	if l.Tracker.CluesFound != 1 {
		t.Errorf("replay counted: found = %d", l.Tracker.CluesFound)
	}

	g.Actor.Yaw = 3.14159265
	l.Handle(g, input.ActionPrimary)
	wantPanel(t, g, state.PanelClue, "L2_FILLER_TITLE")
	if l.Tracker.CluesFound != 1 {
		t.Errorf("filler counted: found = %d", l.Tracker.CluesFound)
	}
}

func TestLevel2CompletionAndPortal(t *testing.T) {
	g := state.NewGame(3)
	l := NewLevel2()
	l.Init(g)
	oneClueRoom(l, g, 1)

	l.Handle(g, input.ActionAim)
	l.Handle(g, input.ActionPrimary)
	wantPanel(t, g, state.PanelIrisComplete, "L2_COMPLETE_TITLE")
	if g.Aim {
		t.Error("aim left on after completion")
	}
	l.Dismiss(g, state.PanelIrisComplete)
	wantRequest(t, g, 3)

	// Rising into the open portal also leaves.
	g.Actor.Pos = l.Tracker.Portal.Center
	l.Tick(g, tick(0.016))
	wantRequest(t, g, 3)
	l.Tick(g, tick(0.016))
	if _, ok := g.TakeRequest(); ok {
		t.Error("portal fired twice")
	}
}

func TestLevel3Interactions(t *testing.T) {
	g := state.NewGame(5)
	l := NewLevel3()
	l.Init(g)
	wantPanel(t, g, state.PanelIntro, "L3_INTRO_TITLE")
	l.Dismiss(g, state.PanelIntro)
	if g.PanelMode() != state.PanelNone {
		t.Fatalf("intro still up: %s", g.PanelMode())
	}

	if l.Handle(g, input.ActionPrimary) {
		t.Error("primary handled in level 3")
	}

	g.Actor.Pos = world.V3(100, 2, 100)
	l.Handle(g, input.ActionInteract)
	wantPanel(t, g, state.PanelInfo, "L3_NONE_TITLE")
	if g.Panel.Body != text.Get("L3_NOTHING_BODY") {
		t.Errorf("body = %q", g.Panel.Body)
	}

	l.Dismiss(g, state.PanelInfo)
	if _, ok := g.TakeRequest(); ok {
		t.Error("dismiss left an unsolved board")
	}
	wantPanel(t, g, state.PanelInfo, "L3_NONE_TITLE")

	n := l.Puzzle.Node("vehaan")
	g.Actor.Pos = world.V3(n.Position.X, g.Actor.Pos.Y, n.Position.Z)
	l.Handle(g, input.ActionInteract)
	wantPanel(t, g, state.PanelConnection, "L3_STARTED_TITLE")
	l.Dismiss(g, state.PanelConnection)
	wantPanel(t, g, state.PanelConnection, "L3_STARTED_TITLE")
}

func TestLevel3CheatAndDoor(t *testing.T) {
	g := state.NewGame(5)
	l := NewLevel3()
	l.Init(g)

	l.Cheat(g)
	wantPanel(t, g, state.PanelConnection, "L3_COMPLETE_TITLE")
	total := len(l.Puzzle.Connections)
	if g.HUD != text.Get("L3_HUD", total, total) {
		t.Errorf("HUD = %q", g.HUD)
	}
	l.Dismiss(g, state.PanelConnection)
	wantRequest(t, g, 4)

	door := l.House.Door.Center
	g.Actor.Pos = world.V3(door.X, g.Actor.Pos.Y, door.Z)
	l.Tick(g, tick(0.016))
	wantRequest(t, g, 4)
}

func TestLevel4Modes(t *testing.T) {
	g := state.NewGame(9)
	l := NewLevel4()
	l.Init(g)
	wantPanel(t, g, state.PanelIntro, "L4_INTRO_TITLE")

	if l.Handle(g, input.ActionAim) {
		t.Error("aim handled outside throw mode")
	}
	l.Handle(g, input.ActionToggleWeapon)
	wantPanel(t, g, state.PanelInfo, "L4_BAT_ON_TITLE")
	l.Handle(g, input.ActionToggleThrow)
	wantPanel(t, g, state.PanelInfo, "L4_THROW_ON_TITLE")
	if !l.Handle(g, input.ActionAim) || !g.Aim {
		t.Fatal("aim did not toggle in throw mode")
	}
	if !l.Handle(g, input.ActionPrimary) {
		t.Fatal("throw failed")
	}
	if len(l.Field.Projectiles) != 1 {
		t.Errorf("projectiles = %d, want 1", len(l.Field.Projectiles))
	}
	want := text.Get("L4_HUD", 0, 3) + "  " + text.Get("L4_HUD_MODES", text.Get("ON"), text.Get("ON"))
	if g.HUD != want {
		t.Errorf("HUD = %q, want %q", g.HUD, want)
	}
}

func TestLevel4ChoicesAndEnding(t *testing.T) {
	g := state.NewGame(9)
	l := NewLevel4()
	l.Init(g)

	plain := -1
	for i, o := range l.Field.Orbs {
		if o.Special == orbs.KeyNone {
			plain = i
			break
		}
	}
	p, _ := l.Field.Pop(plain)
	l.present(g, p)
	wantPanel(t, g, state.PanelReflection, "L4_SHATTER_TITLE")

	for n, k := range orbs.Keys {
		p, ok := l.Field.Pop(l.Field.Special(k))
		if !ok {
			t.Fatalf("pop %s failed", k)
		}
		l.present(g, p)
		if n < len(orbs.Keys)-1 {
			wantPanel(t, g, state.PanelChoice, "L4_CHOICE_TITLE")
			if g.Panel.Body != text.Get("L4_CHOICE_"+k.String()) {
				t.Errorf("choice body = %q", g.Panel.Body)
			}
		}
	}
	wantPanel(t, g, state.PanelEnding, "L4_END_TITLE")
	if !g.CanReplay {
		t.Error("ending did not enable replay")
	}

	// A late plain pop does not hide the ending.
	for i, o := range l.Field.Orbs {
		if !o.Popped && o.Special == orbs.KeyNone {
			p, _ := l.Field.Pop(i)
			l.present(g, p)
			break
		}
	}
	wantPanel(t, g, state.PanelEnding, "L4_END_TITLE")
}

func TestLevel4Cheat(t *testing.T) {
	g := state.NewGame(9)
	l := NewLevel4()
	l.Init(g)
	l.Cheat(g)
	wantPanel(t, g, state.PanelEnding, "L4_END_TITLE")
	if !l.Field.Complete || l.Field.Equipped || l.Field.ThrowMode {
		t.Error("cheat did not latch completion")
	}
}

// dumpable is the part of a level the renderers and dev tools read.
type dumpable interface {
	Init(g *state.Game)
	Scene(g *state.Game) scenefile.Scene
	Describe(w io.Writer, g *state.Game)
}

func TestScenesAndDumps(t *testing.T) {
	tests := []struct {
		name    string
		level   dumpable
		minObjs int
	}{
		{"level1", NewLevel1(), 5},
		{"level2", NewLevel2(), 100},
		{"level3", NewLevel3(), 25},
		{"level4", NewLevel4(), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := state.NewGame(11)
			tt.level.Init(g)
			s := tt.level.Scene(g)
			if len(s.Objects) < tt.minObjs {
				t.Errorf("scene has %d objects, want at least %d", len(s.Objects), tt.minObjs)
			}
			cam, ok := s.CurrentCamera()
			if !ok {
				t.Fatal("scene has no camera")
			}
			if eye := cam.Eye(); eye.Dist(g.Actor.Pos) > 1e-6 {
				t.Errorf("camera eye = %v, want %v", eye, g.Actor.Pos)
			}

			var buf bytes.Buffer
			tt.level.Describe(&buf, g)
			if !strings.Contains(buf.String(), "actor_pos:") {
				t.Errorf("dump missing actor: %q", buf.String())
			}
		})
	}
}
