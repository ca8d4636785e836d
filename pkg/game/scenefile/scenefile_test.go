package scenefile

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"hiro/pkg/engine/world"
)

func near(a, b world.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestSaveLoad(t *testing.T) {
	in := Scene{
		Objects: []Object{
			Sphere(world.V3(1, 2, 3), 0.5, 0xff8800),
			Cube(world.V3(0, 2.5, -5), world.V3(10, 5, 0.4), 0x333333),
		},
		Cameras: []Matrix{View(world.V3(0, 5, 12), world.V3(0, 0, -1))},
	}
	var buf bytes.Buffer
	if err := Save(&buf, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Objects) != 2 || len(out.Cameras) != 1 {
		t.Fatalf("loaded %d objects, %d cameras", len(out.Objects), len(out.Cameras))
	}

	s := out.Objects[0]
	if s.Type != TypeSphere || s.Radius != 0.5 || !near(s.Position(), world.V3(1, 2, 3)) {
		t.Errorf("sphere = %+v", s)
	}
	if s.Color.Hex() != 0xff8800 {
		t.Errorf("sphere color = %06x", s.Color.Hex())
	}
	c := out.Objects[1]
	if c.Type != TypeCube || c.LengthX != 10 || c.LengthY != 5 || c.LengthZ != 0.4 {
		t.Errorf("cube = %+v", c)
	}

	cam, ok := out.CurrentCamera()
	if !ok {
		t.Fatal("no camera")
	}
	if eye := cam.Eye(); !near(eye, world.V3(0, 5, 12)) {
		t.Errorf("camera eye = %v", eye)
	}
}

func TestSaveWritesPositionalRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(&buf, Scene{Objects: []Object{Sphere(world.Vec3{}, 2, 0xffffff)}}); err != nil {
		t.Fatal(err)
	}
	compact := strings.Join(strings.Fields(buf.String()), "")
	if !strings.Contains(compact, `"sphere",[1,1,1],[1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1],2,null,null,null]`) {
		t.Errorf("unexpected encoding: %s", compact)
	}
	if !strings.Contains(compact, `"camera":[]`) {
		t.Errorf("camera list missing: %s", compact)
	}
}

func TestLoadIndexedMatrix(t *testing.T) {
	doc := `{"objects": [["cube", [0.5, 0.5, 0.5], {"0":1,"1":0,"2":0,"3":0,"4":0,"5":1,"6":0,"7":0,"8":0,"9":0,"10":1,"11":0,"12":4,"13":5,"14":6,"15":1}, null, 2, 3, 4]],
	         "camera": [[1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]]}`
	s, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Objects[0].Position(); !near(got, world.V3(4, 5, 6)) {
		t.Errorf("position = %v", got)
	}
	if s.Objects[0].LengthZ != 4 {
		t.Errorf("LengthZ = %v", s.Objects[0].LengthZ)
	}
}

func TestLoadDefaultsMissingSizes(t *testing.T) {
	doc := `{"objects": [["sphere", [1, 0, 0], [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]]]}`
	s, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Objects[0].Radius != 1 {
		t.Errorf("Radius = %v, want 1", s.Objects[0].Radius)
	}
	if _, ok := s.CurrentCamera(); ok {
		t.Error("camera reported for a scene without one")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	ident := `[1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]`
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"objects": [`},
		{"no objects", `{"camera": []}`},
		{"unknown type", `{"objects": [["cone", [1,1,1], ` + ident + `]]}`},
		{"short row", `{"objects": [["cube", [1,1,1]]]}`},
		{"two channel color", `{"objects": [["cube", [1,1], ` + ident + `]]}`},
		{"short matrix", `{"objects": [["cube", [1,1,1], [1,0,0]]]}`},
		{"bad matrix key", `{"objects": [["cube", [1,1,1], {"x": 1}]]}`},
		{"negative radius", `{"objects": [["sphere", [1,1,1], ` + ident + `, -2]]}`},
		{"string size", `{"objects": [["cube", [1,1,1], ` + ident + `, null, "big", 1, 1]]}`},
		{"bad camera", `{"objects": [], "camera": [[1, 2]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Load accepted the document")
			}
			if len(s.Objects) != 0 || len(s.Cameras) != 0 {
				t.Errorf("partial scene returned: %+v", s)
			}
		})
	}
}

func TestColorHexClamps(t *testing.T) {
	if got := (Color{2, -1, 0.5}).Hex(); got != 0xff0080 {
		t.Errorf("Hex = %06x, want ff0080", got)
	}
	if c := RGB(0x4aa3ff); math.Abs(c[0]-float64(0x4a)/255) > 1e-12 {
		t.Errorf("RGB red = %v", c[0])
	}
}
