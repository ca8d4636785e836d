package world

import (
	"github.com/jakecoffman/cp"
)

// Box is a static axis-aligned solid. Footprint is in the ground plane
// (X maps to L/R, Z maps to B/T); MinY and MaxY bound it vertically.
type Box struct {
	Footprint cp.BB
	MinY      float64
	MaxY      float64
}

// NewBox builds a box from its center, full size and vertical base.
func NewBox(center Vec3, sizeX, sizeY, sizeZ float64) Box {
	return Box{
		Footprint: cp.NewBBForExtents(center.Planar(), sizeX/2, sizeZ/2),
		MinY:      center.Y - sizeY/2,
		MaxY:      center.Y + sizeY/2,
	}
}

// Center returns the middle of the box in world space.
func (b Box) Center() Vec3 {
	return Vec3{
		X: (b.Footprint.L + b.Footprint.R) / 2,
		Y: (b.MinY + b.MaxY) / 2,
		Z: (b.Footprint.B + b.Footprint.T) / 2,
	}
}

// Size returns the full extents of the box.
func (b Box) Size() Vec3 {
	return Vec3{
		X: b.Footprint.R - b.Footprint.L,
		Y: b.MaxY - b.MinY,
		Z: b.Footprint.T - b.Footprint.B,
	}
}

// closestPoint is the nearest footprint point to p.
func (b Box) closestPoint(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: cp.Clamp(p.X, b.Footprint.L, b.Footprint.R),
		Y: cp.Clamp(p.Y, b.Footprint.B, b.Footprint.T),
	}
}

// ResolvePenetration pushes pos out of every box it overlaps, horizontally
// only. A box is considered when pos.Y lies within its vertical extent
// widened by yGrace. It returns the corrected position and whether any push
// happened.
func ResolvePenetration(pos Vec3, radius, yGrace float64, boxes []Box) (Vec3, bool) {
	pushed := false
	for _, b := range boxes {
		if pos.Y < b.MinY-yGrace || pos.Y > b.MaxY+yGrace {
			continue
		}
		p := pos.Planar()
		closest := b.closestPoint(p)
		delta := p.Sub(closest)
		distSq := delta.LengthSq()
		if distSq >= radius*radius {
			continue
		}

		var normal cp.Vector
		var depth float64
		if distSq > 1e-12 {
			dist := delta.Length()
			normal = delta.Mult(1 / dist)
			depth = radius - dist
		} else {
			// Center is inside the footprint: leave by the nearest face.
			normal, depth = exitFace(b.Footprint, p)
			depth += radius
		}
		pos = pos.WithPlanar(p.Add(normal.Mult(depth)))
		pushed = true
	}
	return pos, pushed
}

func exitFace(bb cp.BB, p cp.Vector) (cp.Vector, float64) {
	left := p.X - bb.L
	right := bb.R - p.X
	bottom := p.Y - bb.B
	top := bb.T - p.Y

	normal, depth := cp.Vector{X: -1}, left
	if right < depth {
		normal, depth = cp.Vector{X: 1}, right
	}
	if bottom < depth {
		normal, depth = cp.Vector{Y: -1}, bottom
	}
	if top < depth {
		normal, depth = cp.Vector{Y: 1}, top
	}
	return normal, depth
}
