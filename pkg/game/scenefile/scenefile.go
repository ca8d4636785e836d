// Package scenefile reads and writes scene dumps: a JSON object holding the
// visible primitives and the camera views.
//
//	{
//	  "objects": [[type, color, matrix16, radius, lengthX, lengthY, lengthZ], ...],
//	  "camera":  [matrix16, ...]
//	}
//
// Types are "cube" and "sphere". Colors are [r, g, b] in 0..1. Matrices are
// column-major with the translation in elements 12..14; a matrix may also be
// written as an object keyed "0".."15". Fields that do not apply to a type
// are null; a missing size reads as 1.
package scenefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"hiro/pkg/engine/world"
)

// Type is the primitive kind of an object.
type Type string

const (
	TypeCube   Type = "cube"
	TypeSphere Type = "sphere"
)

// Matrix is a column-major 4x4 transform.
type Matrix [16]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{0: 1, 5: 1, 10: 1, 15: 1}
}

// Translation returns a transform that moves the origin to p.
func Translation(p world.Vec3) Matrix {
	m := Identity()
	m[12], m[13], m[14] = p.X, p.Y, p.Z
	return m
}

// Position is the translation part of m.
func (m Matrix) Position() world.Vec3 {
	return world.V3(m[12], m[13], m[14])
}

// View builds a camera view matrix for an eye looking along forward with +Y up.
func View(eye, forward world.Vec3) Matrix {
	f := forward.Normalize()
	up := world.V3(0, 1, 0)
	s := cross(f, up).Normalize()
	if s.LenSq() == 0 {
		s = world.V3(1, 0, 0)
	}
	u := cross(s, f)
	return Matrix{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Eye recovers the camera position from a rigid view matrix.
func (m Matrix) Eye() world.Vec3 {
	t := world.V3(m[12], m[13], m[14])
	// Rows of the rotation block are the camera axes.
	s := world.V3(m[0], m[4], m[8])
	u := world.V3(m[1], m[5], m[9])
	b := world.V3(m[2], m[6], m[10])
	return world.Vec3{
		X: -(s.X*t.X + u.X*t.Y + b.X*t.Z),
		Y: -(s.Y*t.X + u.Y*t.Y + b.Y*t.Z),
		Z: -(s.Z*t.X + u.Z*t.Y + b.Z*t.Z),
	}
}

func cross(a, b world.Vec3) world.Vec3 {
	return world.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Color is an RGB triple in 0..1.
type Color [3]float64

// RGB converts a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{
		float64(hex>>16&0xff) / 255,
		float64(hex>>8&0xff) / 255,
		float64(hex&0xff) / 255,
	}
}

// Hex converts back to 0xRRGGBB, clamping each channel.
func (c Color) Hex() uint32 {
	var out uint32
	for _, ch := range c {
		v := math.Round(math.Max(0, math.Min(1, ch)) * 255)
		out = out<<8 | uint32(v)
	}
	return out
}

// Object is one primitive.
type Object struct {
	Type   Type
	Color  Color
	Matrix Matrix
	// Radius applies to spheres.
	Radius float64
	// LengthX, LengthY and LengthZ apply to cubes.
	LengthX, LengthY, LengthZ float64
}

// Sphere places a sphere at center.
func Sphere(center world.Vec3, radius float64, color uint32) Object {
	return Object{Type: TypeSphere, Color: RGB(color), Matrix: Translation(center), Radius: radius}
}

// Cube places a box at center.
func Cube(center, size world.Vec3, color uint32) Object {
	return Object{
		Type:    TypeCube,
		Color:   RGB(color),
		Matrix:  Translation(center),
		LengthX: size.X,
		LengthY: size.Y,
		LengthZ: size.Z,
	}
}

// Position is the object's center.
func (o Object) Position() world.Vec3 {
	return o.Matrix.Position()
}

// Scene is a full dump.
type Scene struct {
	Objects []Object
	Cameras []Matrix
}

// CurrentCamera returns the first camera view.
func (s Scene) CurrentCamera() (Matrix, bool) {
	if len(s.Cameras) == 0 {
		return Matrix{}, false
	}
	return s.Cameras[0], true
}

type fileFormat struct {
	Objects []json.RawMessage `json:"objects"`
	Camera  []json.RawMessage `json:"camera"`
}

// MarshalJSON writes the object as its positional array.
func (o Object) MarshalJSON() ([]byte, error) {
	row := []any{string(o.Type), o.Color, o.Matrix, nil, nil, nil, nil}
	switch o.Type {
	case TypeSphere:
		row[3] = o.Radius
	case TypeCube:
		row[4], row[5], row[6] = o.LengthX, o.LengthY, o.LengthZ
	}
	return json.Marshal(row)
}

// Save writes s as indented JSON.
func Save(w io.Writer, s Scene) error {
	out := struct {
		Objects []Object `json:"objects"`
		Camera  []Matrix `json:"camera"`
	}{Objects: s.Objects, Camera: s.Cameras}
	if out.Objects == nil {
		out.Objects = []Object{}
	}
	if out.Camera == nil {
		out.Camera = []Matrix{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("scenefile: encode: %w", err)
	}
	return nil
}

// Load reads a scene. Every object and camera is checked before anything is
// returned; on error the Scene is empty.
func Load(r io.Reader) (Scene, error) {
	var raw fileFormat
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Scene{}, fmt.Errorf("scenefile: decode: %w", err)
	}
	if raw.Objects == nil {
		return Scene{}, errors.New("scenefile: missing objects")
	}

	var s Scene
	for i, msg := range raw.Objects {
		o, err := parseObject(msg)
		if err != nil {
			return Scene{}, fmt.Errorf("scenefile: object %d: %w", i, err)
		}
		s.Objects = append(s.Objects, o)
	}
	for i, msg := range raw.Camera {
		m, err := parseMatrix(msg)
		if err != nil {
			return Scene{}, fmt.Errorf("scenefile: camera %d: %w", i, err)
		}
		s.Cameras = append(s.Cameras, m)
	}
	return s, nil
}

func parseObject(msg json.RawMessage) (Object, error) {
	var row []json.RawMessage
	if err := json.Unmarshal(msg, &row); err != nil {
		return Object{}, fmt.Errorf("not an array: %w", err)
	}
	if len(row) < 3 || len(row) > 7 {
		return Object{}, fmt.Errorf("want 3 to 7 fields, got %d", len(row))
	}
	for len(row) < 7 {
		row = append(row, json.RawMessage("null"))
	}

	var o Object
	var typ string
	if err := json.Unmarshal(row[0], &typ); err != nil {
		return Object{}, fmt.Errorf("type: %w", err)
	}
	o.Type = Type(typ)
	if o.Type != TypeCube && o.Type != TypeSphere {
		return Object{}, fmt.Errorf("unknown type %q", typ)
	}

	var rgb []float64
	if err := json.Unmarshal(row[1], &rgb); err != nil {
		return Object{}, fmt.Errorf("color: %w", err)
	}
	if len(rgb) != 3 {
		return Object{}, fmt.Errorf("color: want 3 channels, got %d", len(rgb))
	}
	copy(o.Color[:], rgb)
	m, err := parseMatrix(row[2])
	if err != nil {
		return Object{}, fmt.Errorf("matrix: %w", err)
	}
	o.Matrix = m

	fields := []*float64{&o.Radius, &o.LengthX, &o.LengthY, &o.LengthZ}
	names := []string{"radius", "lengthX", "lengthY", "lengthZ"}
	for i, dst := range fields {
		v, err := optionalNumber(row[3+i])
		if err != nil {
			return Object{}, fmt.Errorf("%s: %w", names[i], err)
		}
		if v < 0 {
			return Object{}, fmt.Errorf("%s: negative", names[i])
		}
		*dst = v
	}
	if o.Type == TypeSphere && o.Radius == 0 {
		o.Radius = 1
	}
	if o.Type == TypeCube {
		for _, l := range []*float64{&o.LengthX, &o.LengthY, &o.LengthZ} {
			if *l == 0 {
				*l = 1
			}
		}
	}
	return o, nil
}

// optionalNumber decodes a number, treating null as zero.
func optionalNumber(msg json.RawMessage) (float64, error) {
	var v *float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

// parseMatrix accepts a 16-element array or an object keyed "0".."15".
func parseMatrix(msg json.RawMessage) (Matrix, error) {
	var m Matrix
	var arr []float64
	if err := json.Unmarshal(msg, &arr); err == nil {
		if len(arr) != 16 {
			return Matrix{}, fmt.Errorf("want 16 elements, got %d", len(arr))
		}
		copy(m[:], arr)
		return m, nil
	}

	var obj map[string]float64
	if err := json.Unmarshal(msg, &obj); err != nil {
		return Matrix{}, errors.New("want an array or an indexed object")
	}
	if len(obj) != 16 {
		return Matrix{}, fmt.Errorf("want 16 elements, got %d", len(obj))
	}
	for k, v := range obj {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i > 15 {
			return Matrix{}, fmt.Errorf("bad index %q", k)
		}
		m[i] = v
	}
	return m, nil
}
