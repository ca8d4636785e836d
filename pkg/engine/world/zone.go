package world

import "math"

// ZoneShape selects how a zone measures the actor.
type ZoneShape int

const (
	// ShapePoint and ShapeCircle compare planar distance against Radius.
	ShapePoint ZoneShape = iota
	ShapeCircle
	// ShapeRect is an axis-aligned footprint of HalfX by HalfZ around Center.
	ShapeRect
	// ShapeSphere compares full 3D distance against Radius.
	ShapeSphere
)

// Zone is a labelled location the actor can trigger by standing in it.
type Zone struct {
	ID        string
	Index     int
	Center    Vec3
	Radius    float64
	Shape     ZoneShape
	HalfX     float64
	HalfZ     float64
	Activated bool
}

// Distance reports how far the actor is from the zone in the zone's metric.
// Rect zones report 0 strictly inside the footprint and +Inf otherwise.
func (z *Zone) Distance(actor Vec3) float64 {
	switch z.Shape {
	case ShapeSphere:
		return actor.Dist(z.Center)
	case ShapeRect:
		if math.Abs(actor.X-z.Center.X) < z.HalfX && math.Abs(actor.Z-z.Center.Z) < z.HalfZ {
			return 0
		}
		return math.Inf(1)
	default:
		return DistXZ(actor, z.Center)
	}
}

// Contains reports whether the actor satisfies the zone's threshold.
func (z *Zone) Contains(actor Vec3) bool {
	if z.Shape == ShapeRect {
		return z.Distance(actor) == 0
	}
	return z.Distance(actor) < z.Radius
}

// ClosestSatisfied returns the index of the satisfied zone nearest the actor,
// or -1. pred may be nil. Ties keep the earlier zone.
func ClosestSatisfied(actor Vec3, zones []Zone, pred func(*Zone) bool) int {
	best := -1
	bestDist := math.Inf(1)
	for i := range zones {
		z := &zones[i]
		if pred != nil && !pred(z) {
			continue
		}
		if !z.Contains(actor) {
			continue
		}
		if d := z.Distance(actor); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// FirstSatisfied returns the first zone in declared order that the actor
// satisfies and pred accepts, or -1.
func FirstSatisfied(actor Vec3, zones []Zone, pred func(*Zone) bool) int {
	for i := range zones {
		z := &zones[i]
		if pred != nil && !pred(z) {
			continue
		}
		if z.Contains(actor) {
			return i
		}
	}
	return -1
}
