package renderer

import (
	"math"
	"sort"

	"hiro/pkg/engine/world"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
)

// View is a top-down projection centered on the actor and turned so the
// actor always faces up the screen.
type View struct {
	Eye   world.Vec3
	Yaw   float64
	Scale float64 // screen units per world unit
	CX    float64
	CY    float64
}

// NewView centers a view on the actor at screen point (cx, cy).
func NewView(g *state.Game, cx, cy, scale float64) View {
	return View{Eye: g.Actor.Pos, Yaw: g.Actor.Yaw, Scale: scale, CX: cx, CY: cy}
}

// Project maps a world point onto the screen.
func (v View) Project(p world.Vec3) (x, y float64) {
	sin, cos := math.Sincos(v.Yaw)
	dx, dz := p.X-v.Eye.X, p.Z-v.Eye.Z
	right := dx*cos + dz*sin
	ahead := dx*sin - dz*cos
	return v.CX + right*v.Scale, v.CY - ahead*v.Scale
}

// Unproject maps a screen point back onto the ground.
func (v View) Unproject(x, y float64) world.Vec3 {
	sin, cos := math.Sincos(v.Yaw)
	right := (x - v.CX) / v.Scale
	ahead := (v.CY - y) / v.Scale
	return world.Vec3{
		X: v.Eye.X + right*cos + ahead*sin,
		Z: v.Eye.Z + right*sin - ahead*cos,
	}
}

// Corners returns the screen outline of a cube's footprint.
func (v View) Corners(o scenefile.Object) [4][2]float64 {
	c := o.Position()
	hx, hz := o.LengthX/2, o.LengthZ/2
	var out [4][2]float64
	for i, d := range [4][2]float64{{-hx, -hz}, {hx, -hz}, {hx, hz}, {-hx, hz}} {
		out[i][0], out[i][1] = v.Project(world.V3(c.X+d[0], c.Y, c.Z+d[1]))
	}
	return out
}

// top is the highest point of an object.
func top(o scenefile.Object) float64 {
	if o.Type == scenefile.TypeSphere {
		return o.Position().Y + o.Radius
	}
	return o.Position().Y + o.LengthY/2
}

// Layered returns the scene's objects ordered bottom to top, so drawing them
// in order leaves the highest one visible.
func Layered(s scenefile.Scene) []scenefile.Object {
	out := append([]scenefile.Object(nil), s.Objects...)
	sort.SliceStable(out, func(i, j int) bool {
		return top(out[i]) < top(out[j])
	})
	return out
}

// Covers reports whether o's footprint contains the ground point p.
func Covers(o scenefile.Object, p world.Vec3) bool {
	c := o.Position()
	if o.Type == scenefile.TypeSphere {
		return world.DistXZ(c, p) <= o.Radius
	}
	return math.Abs(p.X-c.X) <= o.LengthX/2 && math.Abs(p.Z-c.Z) <= o.LengthZ/2
}
