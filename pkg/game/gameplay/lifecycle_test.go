package gameplay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
	"hiro/pkg/game/levels"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// recorder is a Level that logs every call.
type recorder struct {
	name  string
	calls *[]string
	// next is requested from Handle when non-zero.
	next int
}

func (r *recorder) log(call string) {
	*r.calls = append(*r.calls, r.name+"."+call)
}

func (r *recorder) Init(g *state.Game)                { r.log("init") }
func (r *recorder) Tick(g *state.Game, f input.Frame) { r.log("tick") }
func (r *recorder) Teardown(g *state.Game)            { r.log("teardown") }
func (r *recorder) Cheat(g *state.Game)               { r.log("cheat") }
func (r *recorder) Dismiss(g *state.Game, mode state.PanelMode) {
	r.log("dismiss:" + mode.String())
	g.ClearPanel()
}
func (r *recorder) Handle(g *state.Game, a input.Action) bool {
	r.log("handle")
	if r.next != 0 {
		g.RequestLevel(r.next)
	}
	return true
}

func frame(actions ...input.Action) input.Frame {
	return input.Frame{Dt: 1.0 / 60, Actions: actions}
}

func TestRegister(t *testing.T) {
	var calls []string
	o := New(state.NewGame(1))
	if err := o.Register(1, &recorder{name: "a", calls: &calls}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name string
		n    int
		l    Level
	}{
		{"duplicate", 1, &recorder{name: "b", calls: &calls}},
		{"nil", 2, nil},
		{"zero", 0, &recorder{name: "c", calls: &calls}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := o.Register(tt.n, tt.l); err == nil {
				t.Error("Register accepted it")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	var calls []string
	o := New(state.NewGame(1))
	if err := o.Validate(); err == nil {
		t.Error("empty registry validated")
	}
	o.Register(1, &recorder{name: "a", calls: &calls})
	o.Register(3, &recorder{name: "c", calls: &calls})
	err := o.Validate()
	if err == nil || !strings.Contains(err.Error(), "[2]") {
		t.Errorf("Validate() = %v, want missing [2]", err)
	}
	o.Register(2, &recorder{name: "b", calls: &calls})
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := NewDefault(state.NewGame(1)).Validate(); err != nil {
		t.Errorf("default levels: %v", err)
	}
}

func TestTransitionIsSynchronous(t *testing.T) {
	var calls []string
	o := New(state.NewGame(1))
	o.Register(1, &recorder{name: "one", calls: &calls, next: 2})
	o.Register(2, &recorder{name: "two", calls: &calls})
	o.Goto(1)

	calls = nil
	o.Step(frame(input.ActionInteract))
	want := []string{"one.handle", "one.teardown", "two.init", "two.tick"}
	if strings.Join(calls, " ") != strings.Join(want, " ") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if o.Game().Level != 2 {
		t.Errorf("Level = %d, want 2", o.Game().Level)
	}
}

func TestMissingLevelShowsErrorPanel(t *testing.T) {
	var calls []string
	g := state.NewGame(1)
	o := New(g)
	o.Register(1, &recorder{name: "one", calls: &calls, next: 2})
	o.Goto(1)
	g.Actor.Pos = world.V3(3, 5, 4)

	o.Step(frame(input.ActionInteract))
	if g.PanelMode() != state.PanelError {
		t.Fatalf("panel = %s, want error", g.PanelMode())
	}
	if g.Panel.Title != text.Get("LEVEL_MISSING_TITLE", 2) {
		t.Errorf("title = %q", g.Panel.Title)
	}
	if g.Level != 1 || o.Current() == nil {
		t.Errorf("level changed to %d", g.Level)
	}
	if g.Actor.Pos != world.V3(3, 5, 4) {
		t.Errorf("actor moved to %v", g.Actor.Pos)
	}
	for _, c := range calls {
		if c == "one.teardown" {
			t.Error("current level was torn down")
		}
	}

	calls = nil
	o.Step(frame(input.ActionConfirm))
	if g.Panel.Visible() {
		t.Error("confirm did not clear the error panel")
	}
	for _, c := range calls {
		if strings.HasPrefix(c, "one.dismiss") {
			t.Error("error panel was routed to the level")
		}
	}
}

func TestConfirmRoutesToLevel(t *testing.T) {
	var calls []string
	g := state.NewGame(1)
	o := New(g)
	o.Register(1, &recorder{name: "one", calls: &calls})
	o.Goto(1)

	calls = nil
	o.Step(frame(input.ActionConfirm))
	if len(calls) != 1 || calls[0] != "one.tick" {
		t.Errorf("confirm without a panel: %v", calls)
	}

	g.ShowPanel(state.PanelMemory, "t", "b", "h")
	calls = nil
	o.Step(frame(input.ActionConfirm))
	if calls[0] != "one.dismiss:memory" {
		t.Errorf("calls = %v", calls)
	}
}

func TestQuit(t *testing.T) {
	o := NewDefault(state.NewGame(1))
	o.Goto(1)
	if !o.Step(frame()) {
		t.Error("empty frame quit")
	}
	if o.Step(frame(input.ActionQuit)) {
		t.Error("quit did not stop the loop")
	}
}

func TestStepOrder(t *testing.T) {
	g := state.NewGame(1)
	o := NewDefault(g)
	o.Goto(4)
	g.ClearPanel()
	start := g.Actor.Pos
	base := g.Actor.BaseHeight

	f := frame(input.ActionJump)
	f.Forward = 1
	f.LookDX = 100
	o.Step(f)

	if !g.Actor.Airborne() || g.Actor.Pos.Y <= base {
		t.Errorf("jump not integrated: y = %.3f airborne = %v", g.Actor.Pos.Y, g.Actor.Airborne())
	}
	if g.Actor.Yaw == 0 {
		t.Error("look not applied")
	}
	// Movement follows the new yaw, so the actor drifts sideways.
	if moved := g.Actor.Pos.Sub(start); moved.X == 0 {
		t.Errorf("move ignored the look applied first: %v", moved)
	}
	if g.Time != f.Dt {
		t.Errorf("Time = %v", g.Time)
	}
}

func TestCheatThroughEveryLevel(t *testing.T) {
	g := state.NewGame(21)
	o := NewDefault(g)
	o.Goto(1)

	o.Step(frame(input.ActionCheat))
	if g.Level != 2 {
		t.Fatalf("level = %d after first cheat", g.Level)
	}
	o.Step(frame(input.ActionCheat))
	if g.Level != 3 {
		t.Fatalf("level = %d after second cheat", g.Level)
	}
	o.Step(frame(input.ActionCheat))
	if g.PanelMode() != state.PanelConnection {
		t.Fatalf("level 3 cheat panel = %s", g.PanelMode())
	}
	o.Step(frame(input.ActionConfirm))
	if g.Level != 4 {
		t.Fatalf("level = %d after solving the board", g.Level)
	}

	if o.Step(frame(input.ActionReplay)); g.Level != 4 {
		t.Fatal("replay before the ending")
	}
	o.Step(frame(input.ActionCheat))
	if g.PanelMode() != state.PanelEnding || !g.CanReplay {
		t.Fatalf("ending not shown: %s", g.PanelMode())
	}

	o.Step(frame(input.ActionReplay))
	if g.Level != 1 || g.PanelMode() != state.PanelIntro || g.CanReplay {
		t.Errorf("replay: level %d panel %s can_replay %v", g.Level, g.PanelMode(), g.CanReplay)
	}
}

// TestBondScenario walks the stock board the way a player would.
func TestBondScenario(t *testing.T) {
	g := state.NewGame(2)
	o := NewDefault(g)
	o.Goto(3)
	o.Step(frame(input.ActionConfirm))

	l3 := o.Current().(*levels.Level3)
	p := l3.Puzzle
	press := func(id string) {
		t.Helper()
		n := p.Node(id)
		g.Actor.Pos = world.V3(n.Position.X, g.Actor.Pos.Y, n.Position.Z)
		o.Step(frame(input.ActionInteract))
	}

	press("vehaan")
	if !p.Session.Drawing || p.Session.StartID != "vehaan" || p.Session.Active.ID != "vehaan-chitti" {
		t.Fatalf("session = %+v", p.Session)
	}
	press("chitti")
	if !p.Connection("vehaan-chitti").Completed {
		t.Fatal("vehaan-chitti not completed")
	}
	chitti := p.Node("chitti").Color
	for _, rc := range [][2]int{{0, 2}, {0, 1}, {0, 0}} {
		if c := p.Grid.GetCell(rc[0], rc[1]); c.Color != chitti {
			t.Errorf("cell %v color = %06x, want %06x", rc, c.Color, chitti)
		}
	}

	for _, pair := range [][2]string{{"vehaan", "balaram"}, {"shiven", "lohith"}, {"shiven", "gang"}} {
		press(pair[0])
		press(pair[1])
	}
	for _, id := range []string{"shiven-ram", "vehaan-ram"} {
		if !p.CanStart(p.Connection(id)) {
			t.Fatalf("%s not startable", id)
		}
	}

	press("ram")
	press("shiven")
	if p.AllComplete {
		t.Fatal("latched early")
	}
	press("vehaan")
	press("ram")
	if !p.AllComplete || g.PanelMode() != state.PanelConnection {
		t.Fatalf("AllComplete = %v panel = %s", p.AllComplete, g.PanelMode())
	}
	if g.Panel.Title != text.Get("L3_COMPLETE_TITLE") {
		t.Errorf("title = %q", g.Panel.Title)
	}

	o.Step(frame(input.ActionConfirm))
	if g.Level != 4 {
		t.Errorf("level = %d after the final bond", g.Level)
	}
}

func TestConfigAppliesAtNextLevel(t *testing.T) {
	g := state.NewGame(1)
	o := NewDefault(g)
	o.Goto(1)
	l1 := o.Current().(*levels.Level1)
	spots := len(l1.Seq.Spots)

	cfg := config.Default()
	cfg.Level1.Spots.SpotCount = spots + 2
	cfg.Actor.MoveSpeed = 9
	o.SetConfig(cfg)
	if len(l1.Seq.Spots) != spots {
		t.Error("running level picked up new tunables")
	}
	if g.Messages[len(g.Messages)-1] != text.Get("MSG_CONFIG") {
		t.Errorf("messages = %v", g.Messages)
	}

	o.Restart()
	l1 = o.Current().(*levels.Level1)
	if len(l1.Seq.Spots) != spots+2 {
		t.Errorf("spots = %d, want %d", len(l1.Seq.Spots), spots+2)
	}
	if g.Actor.Tuning.MoveSpeed != 9 {
		t.Errorf("move speed = %v", g.Actor.Tuning.MoveSpeed)
	}
}

func TestDebugKeysWriteFiles(t *testing.T) {
	dir := t.TempDir()
	g := state.NewGame(1)
	o := NewDefault(g)
	o.DumpDir = dir
	o.Goto(2)

	o.Step(frame(input.ActionDumpState, input.ActionExportScene))
	for _, name := range []string{"state-level2.txt", "scene-level2.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	last := g.Messages[len(g.Messages)-1]
	if !strings.Contains(last, "scene-level2.json") {
		t.Errorf("last message = %q", last)
	}
}
