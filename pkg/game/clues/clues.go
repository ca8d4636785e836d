// Package clues tracks the hunt for the clue objects hidden among ordinary
// ones. Discovery is idempotent and a portal opens once enough are found.
package clues

import (
	"math"
	"math/rand"

	"github.com/tanema/gween/ease"
	"github.com/zyedidia/generic/mapset"

	"hiro/pkg/engine/world"
)

// Kind separates filler objects from the ones that count.
type Kind int

const (
	KindNormal Kind = iota
	KindClue
)

// Tuning holds placement, radar and portal parameters.
type Tuning struct {
	Required      int     `yaml:"required"`
	TargetCount   int     `yaml:"target_count"`
	MaxAttempts   int     `yaml:"max_attempts"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	RoomRadius    float64 `yaml:"room_radius"`
	RoomHeight    float64 `yaml:"room_height"`
	WallInset     float64 `yaml:"wall_inset"`
	MinY          float64 `yaml:"min_y"`
	Gap           float64 `yaml:"gap"`
	PickDistance  float64 `yaml:"pick_distance"`
	RadarInterval float64 `yaml:"radar_interval"`
	RadarDuration float64 `yaml:"radar_duration"`
	RadarExpand   float64 `yaml:"radar_expand"`
	PortalHeight  float64 `yaml:"portal_height"`
	PortalRadius  float64 `yaml:"portal_radius"`
}

// DefaultTuning returns the stock level values.
func DefaultTuning() Tuning {
	return Tuning{
		Required:      3,
		TargetCount:   320,
		MaxAttempts:   16000,
		MinRadius:     0.16,
		MaxRadius:     0.66,
		RoomRadius:    12,
		RoomHeight:    10,
		WallInset:     0.09,
		MinY:          2,
		Gap:           0.025,
		PickDistance:  30,
		RadarInterval: 5.0,
		RadarDuration: 0.55,
		RadarExpand:   0.85,
		PortalHeight:  9.45,
		PortalRadius:  1.75,
	}
}

// Object is a pickable eye on the wall.
type Object struct {
	ID         int
	Kind       Kind
	ClueIndex  int
	Discovered bool
	Position   world.Vec3
	Radius     float64
	Phase      float64
}

// Tracker owns every object and the completion latches.
type Tracker struct {
	Objects    []Object
	CluesFound int
	Required   int

	PortalOpen      bool
	PortalTriggered bool
	Portal          world.Zone

	tuning     Tuning
	radarTimer float64
	// ping holds elapsed pulse time per object id.
	ping    map[int]float64
	pinging mapset.Set[int]
}

// New creates a tracker over objects.
func New(objects []Object, t Tuning) *Tracker {
	return &Tracker{
		Objects:  objects,
		Required: t.Required,
		Portal: world.Zone{
			ID:     "top-portal",
			Center: world.V3(0, t.PortalHeight, 0),
			Radius: t.PortalRadius,
			Shape:  world.ShapeSphere,
		},
		tuning:  t,
		ping:    make(map[int]float64),
		pinging: mapset.New[int](),
	}
}

// Pick returns the index of the nearest object hit by a ray from origin along
// dir, or -1.
func (tr *Tracker) Pick(origin, dir world.Vec3) int {
	dir = dir.Normalize()
	best := -1
	bestT := tr.tuning.PickDistance
	for i := range tr.Objects {
		o := &tr.Objects[i]
		if t, ok := raySphere(origin, dir, o.Position, o.Radius); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}

func raySphere(origin, dir, center world.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Outcome says what an interaction did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFiller
	OutcomeDiscovered
	OutcomeReplayed
)

// Result describes an interaction for the caller to present.
type Result struct {
	Outcome Outcome
	// FlavorIndex picks a filler line, valid for OutcomeFiller.
	FlavorIndex int
	// ClueIndex is valid for OutcomeDiscovered and OutcomeReplayed.
	ClueIndex int
	// Found is CluesFound after the interaction.
	Found int
	// Completed is true only on the interaction that opened the portal.
	Completed bool
}

// Interact resolves an interaction with the object at index i. flavorCount is
// the size of the filler text pool.
func (tr *Tracker) Interact(i int, flavorCount int, rng *rand.Rand) Result {
	if i < 0 || i >= len(tr.Objects) {
		return Result{Outcome: OutcomeNone, Found: tr.CluesFound}
	}
	o := &tr.Objects[i]
	switch {
	case o.Kind == KindNormal:
		idx := 0
		if flavorCount > 0 {
			idx = rng.Intn(flavorCount)
		}
		return Result{Outcome: OutcomeFiller, FlavorIndex: idx, Found: tr.CluesFound}
	case o.Discovered:
		return Result{Outcome: OutcomeReplayed, ClueIndex: o.ClueIndex, Found: tr.CluesFound}
	}

	o.Discovered = true
	tr.CluesFound++
	res := Result{Outcome: OutcomeDiscovered, ClueIndex: o.ClueIndex, Found: tr.CluesFound}
	if tr.CluesFound >= tr.Required && !tr.PortalOpen {
		tr.PortalOpen = true
		res.Completed = true
	}
	return res
}

// Complete discovers every clue and opens the portal. Used by the skip key.
func (tr *Tracker) Complete() {
	for i := range tr.Objects {
		o := &tr.Objects[i]
		if o.Kind == KindClue && !o.Discovered {
			o.Discovered = true
			tr.CluesFound++
		}
	}
	tr.PortalOpen = true
}

// PortalTrigger fires once when the open portal is reached.
func (tr *Tracker) PortalTrigger(actor world.Vec3) bool {
	if !tr.PortalOpen || tr.PortalTriggered {
		return false
	}
	if !tr.Portal.Contains(actor) {
		return false
	}
	tr.PortalTriggered = true
	return true
}

// UpdateRadar advances the cosmetic radar ping. Every interval, while the hunt
// is incomplete, every undiscovered clue starts a pulse.
func (tr *Tracker) UpdateRadar(dt float64) {
	tr.pinging.Each(func(id int) {
		tr.ping[id] += dt
	})
	for id, elapsed := range tr.ping {
		if elapsed >= tr.tuning.RadarDuration {
			delete(tr.ping, id)
			tr.pinging.Remove(id)
		}
	}

	tr.radarTimer += dt
	if tr.radarTimer < tr.tuning.RadarInterval {
		return
	}
	tr.radarTimer = 0
	if tr.CluesFound >= tr.Required {
		return
	}
	for _, o := range tr.Objects {
		if o.Kind == KindClue && !o.Discovered {
			tr.ping[o.ID] = 0
			tr.pinging.Put(o.ID)
		}
	}
}

// Pulse returns the radar wave for an object: its scale factor and opacity
// fade, or ok=false when the object isn't pinging.
func (tr *Tracker) Pulse(id int) (scale, fade float64, ok bool) {
	elapsed, ok := tr.ping[id]
	if !ok {
		return 1, 0, false
	}
	d := float32(tr.tuning.RadarDuration)
	e := float64(ease.OutQuad(float32(elapsed), 0, 1, d))
	return 1 + tr.tuning.RadarExpand*e, 1 - elapsed/tr.tuning.RadarDuration, true
}

// PlaceObjects scatters objects over the inside of the cylindrical wall by
// rejection sampling, then marks Required of them as clues.
func PlaceObjects(t Tuning, rng *rand.Rand) []Object {
	inner := t.RoomRadius - t.WallInset
	height := t.RoomHeight - 2.4
	objects := make([]Object, 0, t.TargetCount)

	for attempts := 0; len(objects) < t.TargetCount && attempts < t.MaxAttempts; attempts++ {
		r := rng.Float64()
		radius := t.MinRadius + (t.MaxRadius-t.MinRadius)*r*r
		angle := rng.Float64() * math.Pi * 2
		y := t.MinY + height*rng.Float64()
		pos := world.V3(math.Cos(angle)*inner, y, math.Sin(angle)*inner)

		ok := true
		for _, p := range objects {
			if p.Position.Dist(pos) < radius+p.Radius+t.Gap {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		objects = append(objects, Object{
			ID:       len(objects),
			Kind:     KindNormal,
			Position: pos,
			Radius:   radius,
			Phase:    rng.Float64() * math.Pi * 2,
		})
	}

	indices := make([]int, len(objects))
	for i := range indices {
		indices[i] = i
	}
	for c := 0; c < t.Required && len(indices) > 0; c++ {
		pick := rng.Intn(len(indices))
		idx := indices[pick]
		indices = append(indices[:pick], indices[pick+1:]...)
		objects[idx].Kind = KindClue
		objects[idx].ClueIndex = c
	}
	return objects
}
