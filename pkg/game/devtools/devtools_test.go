package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hiro/pkg/engine/world"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
)

type fakeLevel struct{}

func (fakeLevel) Describe(w io.Writer, g *state.Game) {
	fmt.Fprintln(w, "fake: yes")
}

func TestDumpState(t *testing.T) {
	dir := t.TempDir()
	g := state.NewGame(42)
	g.Level = 3
	g.ShowPanel(state.PanelInfo, "Title", "Body", "Hint")
	g.AddMessage("hello")

	path, err := DumpState(dir, g, fakeLevel{})
	if err != nil {
		t.Fatalf("DumpState: %v", err)
	}
	if filepath.Base(path) != "state-level3.txt" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dump := string(data)
	for _, want := range []string{
		"level: 3\n",
		"seed: 42\n",
		"mode: info\n",
		`title: "Title"`,
		`"hello"`,
		"fake: yes\n",
		"=== END STATE DUMP ===",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
}

func TestDumpStateWithoutLevel(t *testing.T) {
	dir := t.TempDir()
	path, err := DumpState(dir, state.NewGame(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "(no level loaded)") {
		t.Error("dump does not note the missing level")
	}
}

func TestDumpStateBadDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := DumpState(missing, state.NewGame(1), nil); err == nil {
		t.Error("DumpState wrote into a missing directory")
	}
}

func TestExportSceneRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := state.NewGame(1)
	g.Level = 2
	in := scenefile.Scene{
		Objects: []scenefile.Object{scenefile.Sphere(world.V3(1, 2, 3), 0.5, 0xff0000)},
		Cameras: []scenefile.Matrix{scenefile.View(world.V3(0, 5, 0), world.V3(0, 0, -1))},
	}
	path, err := ExportScene(dir, g, in)
	if err != nil {
		t.Fatalf("ExportScene: %v", err)
	}
	if filepath.Base(path) != "scene-level2.json" {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	out, err := scenefile.Load(f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Objects) != 1 || out.Objects[0].Position() != world.V3(1, 2, 3) {
		t.Errorf("objects = %+v", out.Objects)
	}
	if cam, ok := out.CurrentCamera(); !ok || cam.Eye().Dist(world.V3(0, 5, 0)) > 1e-9 {
		t.Errorf("camera = %v, %v", cam, ok)
	}
}
