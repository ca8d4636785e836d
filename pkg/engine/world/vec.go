// Package world provides engine-level spatial primitives: vectors, trigger
// zones, static colliders, a tile grid, a spatial hash and a first-person actor.
// Nothing in here knows about a particular level.
package world

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for building a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Dist is the full 3D distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Planar projects the point onto the ground plane (X, Z).
func (v Vec3) Planar() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// WithPlanar replaces X and Z from a ground-plane vector, keeping Y.
func (v Vec3) WithPlanar(p cp.Vector) Vec3 {
	return Vec3{X: p.X, Y: v.Y, Z: p.Y}
}

// DistXZ is the distance between two points ignoring the vertical axis.
func DistXZ(a, b Vec3) float64 {
	return a.Planar().Distance(b.Planar())
}
