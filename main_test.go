package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
	"hiro/pkg/game/gameplay"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
)

func TestResolveSeed(t *testing.T) {
	tests := []struct {
		name    string
		flag    int64
		flagSet bool
		env     config.Env
		want    int64
	}{
		{"flag wins", 7, true, config.Env{Seed: 9, HasSeed: true}, 7},
		{"flag zero", 0, true, config.Env{Seed: 9, HasSeed: true}, 0},
		{"env", 0, false, config.Env{Seed: 9, HasSeed: true}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSeed(tt.flag, tt.flagSet, tt.env); got != tt.want {
				t.Errorf("resolveSeed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPickRenderer(t *testing.T) {
	if _, onTerminal, err := pickRenderer("tui"); err != nil || !onTerminal {
		t.Errorf("tui: terminal = %v, err = %v", onTerminal, err)
	}
	if _, onTerminal, err := pickRenderer("ebiten"); err != nil || onTerminal {
		t.Errorf("ebiten: terminal = %v, err = %v", onTerminal, err)
	}
	if _, _, err := pickRenderer("opengl"); err == nil {
		t.Error("unknown renderer accepted")
	}
}

func TestPrintSceneInfo(t *testing.T) {
	color.Disable()
	path := filepath.Join(t.TempDir(), "scene.json")
	s := scenefile.Scene{
		Objects: []scenefile.Object{
			scenefile.Cube(world.V3(0, 0, 0), world.V3(2, 2, 2), 0xffffff),
			scenefile.Sphere(world.V3(4, 1, -2), 0.5, 0xff0000),
		},
		Cameras: []scenefile.Matrix{scenefile.View(world.V3(0, 2, 5), world.V3(0, 0, -1))},
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := scenefile.Save(f, s); err != nil {
		t.Fatal(err)
	}
	f.Close()

	var buf bytes.Buffer
	if err := printSceneInfo(&buf, path); err != nil {
		t.Fatalf("printSceneInfo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"objects: 2 (cubes 1, spheres 1)", "centers: 0.00,0.00,-2.00 to 4.00,1.00,0.00", "camera: 0.00,2.00,5.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := printSceneInfo(&buf, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestReloadAppliesBetweenSteps(t *testing.T) {
	g := state.NewGame(1)
	o := gameplay.NewDefault(g)
	o.Goto(1)
	l := newReloadingLoop(o)

	first := config.Default()
	second := config.Default()
	second.Actor.MoveSpeed = 11
	l.offer(first)
	l.offer(second)

	l.Step(input.Frame{Dt: 1.0 / 60})
	if g.Config != second {
		t.Error("latest reload not applied")
	}
	if got := g.Messages[len(g.Messages)-1]; !strings.Contains(got, "reloaded") {
		t.Errorf("last message = %q", got)
	}

	g.Config = first
	l.Step(input.Frame{Dt: 1.0 / 60})
	if g.Config != first {
		t.Error("a reload was applied twice")
	}
}
