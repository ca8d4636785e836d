// Package orbs simulates the drifting orb field: bobbing and rolling orbs
// that bounce off the walls, the actor and each other, and that can be
// popped by a close swing or a thrown ball.
package orbs

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"hiro/pkg/engine/world"
)

// Key marks one of the special orbs.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
)

// Keys lists the special keys in assignment order.
var Keys = []Key{KeyA, KeyB, KeyC}

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyA:
		return "A"
	case KeyB:
		return "B"
	case KeyC:
		return "C"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// Tuning holds every simulation constant.
type Tuning struct {
	Count          int     `yaml:"count"`
	FloatingCount  int     `yaml:"floating_count"`
	RoomHalf       float64 `yaml:"room_half"`
	WallHeight     float64 `yaml:"wall_height"`
	SpawnMargin    float64 `yaml:"spawn_margin"`
	MinRadius      float64 `yaml:"min_radius"`
	MaxRadius      float64 `yaml:"max_radius"`
	WallMargin     float64 `yaml:"wall_margin"`
	FloatMinY      float64 `yaml:"float_min_y"`
	FloatCeiling   float64 `yaml:"float_ceiling"`
	PersonalSpace  float64 `yaml:"personal_space"`
	HashCell       float64 `yaml:"hash_cell"`
	Restitution    float64 `yaml:"restitution"`
	Damping        float64 `yaml:"damping"`
	SwingDuration  float64 `yaml:"swing_duration"`
	SwingReach     float64 `yaml:"swing_reach"`
	SwingMinDot    float64 `yaml:"swing_min_dot"`
	ThrowCooldown  float64 `yaml:"throw_cooldown"`
	ThrowSpeed     float64 `yaml:"throw_speed"`
	ThrowLife      float64 `yaml:"throw_life"`
	ThrowOffset    float64 `yaml:"throw_offset"`
	ThrowHitRadius float64 `yaml:"throw_hit_radius"`
	Required       int     `yaml:"required"`
}

// DefaultTuning returns the stock room.
func DefaultTuning() Tuning {
	return Tuning{
		Count:          60,
		FloatingCount:  22,
		RoomHalf:       30,
		WallHeight:     16,
		SpawnMargin:    6,
		MinRadius:      0.55,
		MaxRadius:      1.3,
		WallMargin:     2,
		FloatMinY:      2.2,
		FloatCeiling:   2.6,
		PersonalSpace:  1.4,
		HashCell:       2.4,
		Restitution:    0.72,
		Damping:        0.995,
		SwingDuration:  0.18,
		SwingReach:     3.2,
		SwingMinDot:    0.25,
		ThrowCooldown:  0.18,
		ThrowSpeed:     18,
		ThrowLife:      1.6,
		ThrowOffset:    0.7,
		ThrowHitRadius: 0.12,
		Required:       3,
	}
}

// Orb is one sphere in the field.
type Orb struct {
	ID       int
	Pos      world.Vec3
	Vel      world.Vec3
	Radius   float64
	Floating bool
	Popped   bool
	Special  Key
	BobPhase float64
}

// Projectile is a thrown ball in flight.
type Projectile struct {
	Pos  world.Vec3
	Vel  world.Vec3
	Life float64
}

// FoundSet records which special orbs have been popped.
type FoundSet struct {
	found mapset.Set[Key]
	Count int
}

func newFoundSet() FoundSet {
	return FoundSet{found: mapset.New[Key]()}
}

// Has reports whether k has been found.
func (f *FoundSet) Has(k Key) bool {
	return f.found.Has(k)
}

// mark records k and reports whether it was new.
func (f *FoundSet) mark(k Key) bool {
	if k == KeyNone || f.found.Has(k) {
		return false
	}
	f.found.Put(k)
	f.Count = f.found.Size()
	return true
}

// Field is the whole level simulation.
type Field struct {
	Orbs        []Orb
	Projectiles []Projectile
	Found       FoundSet
	// Complete latches once every special orb is found.
	Complete bool

	Equipped  bool
	ThrowMode bool
	Swinging  bool
	SwingTime float64
	Cooldown  float64

	clock  float64
	hash   *world.SpatialHash
	points []world.Vec3
	tuning Tuning
}

// Spawn scatters orbs and picks the specials using rng.
func Spawn(t Tuning, rng *rand.Rand) *Field {
	f := New(nil, t)
	span := t.RoomHalf - t.SpawnMargin
	for i := 0; i < t.Count; i++ {
		r := t.MinRadius + rng.Float64()*(t.MaxRadius-t.MinRadius)
		o := Orb{
			ID:       i,
			Radius:   r,
			Floating: i < t.FloatingCount,
		}
		o.Pos.X = (rng.Float64()*2 - 1) * span
		o.Pos.Z = (rng.Float64()*2 - 1) * span
		if o.Floating {
			o.Pos.Y = 3 + rng.Float64()*8
		} else {
			o.Pos.Y = r
		}
		o.Vel.X = (rng.Float64()*2 - 1) * 0.6
		if o.Floating {
			o.Vel.Y = (rng.Float64()*2 - 1) * 0.25
		}
		o.Vel.Z = (rng.Float64()*2 - 1) * 0.6
		o.BobPhase = rng.Float64() * math.Pi * 2
		f.Orbs = append(f.Orbs, o)
	}

	order := rng.Perm(len(f.Orbs))
	for i, k := range Keys {
		if i >= len(order) {
			break
		}
		f.Orbs[order[i]].Special = k
	}
	return f
}

// New wraps an existing set of orbs.
func New(orbs []Orb, t Tuning) *Field {
	return &Field{
		Orbs:   orbs,
		Found:  newFoundSet(),
		hash:   world.NewSpatialHash(t.HashCell),
		tuning: t,
	}
}

// Tuning returns the field's constants.
func (f *Field) Tuning() Tuning {
	return f.tuning
}

// Special returns the index of the orb carrying k, or -1.
func (f *Field) Special(k Key) int {
	for i := range f.Orbs {
		if f.Orbs[i].Special == k {
			return i
		}
	}
	return -1
}

// Live counts unpopped orbs.
func (f *Field) Live() int {
	n := 0
	for i := range f.Orbs {
		if !f.Orbs[i].Popped {
			n++
		}
	}
	return n
}

// Pop is the outcome of popping an orb.
type Pop struct {
	Index int
	Key   Key
	// NewFind is true when a special orb was found for the first time.
	NewFind bool
	Count   int
	// Finished is true only on the pop that completed the set.
	Finished bool
}

// Pop removes orb i from play. Popping an already popped orb does nothing and
// returns false.
func (f *Field) Pop(i int) (Pop, bool) {
	if i < 0 || i >= len(f.Orbs) || f.Orbs[i].Popped {
		return Pop{}, false
	}
	o := &f.Orbs[i]
	o.Popped = true
	p := Pop{Index: i, Key: o.Special}
	if f.Found.mark(o.Special) {
		p.NewFind = true
		if f.Found.Count >= f.tuning.Required {
			p.Finished = f.finish()
		}
	}
	p.Count = f.Found.Count
	return p, true
}

func (f *Field) finish() bool {
	if f.Complete {
		return false
	}
	f.Complete = true
	f.Equipped = false
	f.ThrowMode = false
	f.Swinging = false
	return true
}

// FindAll marks every special found and finishes the level. Used by the skip
// key. It reports whether this call latched completion.
func (f *Field) FindAll() bool {
	if f.Complete {
		return false
	}
	for _, k := range Keys {
		f.Found.mark(k)
	}
	return f.finish()
}

// ToggleWeapon flips the bat. It does nothing once complete.
func (f *Field) ToggleWeapon() bool {
	if f.Complete {
		return false
	}
	f.Equipped = !f.Equipped
	return true
}

// ToggleThrow flips throw mode. It does nothing once complete.
func (f *Field) ToggleThrow() bool {
	if f.Complete {
		return false
	}
	f.ThrowMode = !f.ThrowMode
	return true
}

// Swing starts a bat swing and pops the best orb in front of the actor.
// It does nothing without the bat, mid-swing or once complete.
func (f *Field) Swing(actor, facing world.Vec3) (Pop, bool) {
	if !f.Equipped || f.Complete || f.Swinging {
		return Pop{}, false
	}
	f.Swinging = true
	f.SwingTime = 0
	if i := f.bestSwingTarget(actor, facing.Normalize()); i >= 0 {
		return f.Pop(i)
	}
	return Pop{}, false
}

func (f *Field) bestSwingTarget(actor, facing world.Vec3) int {
	best := -1
	bestScore := math.Inf(1)
	for i := range f.Orbs {
		o := &f.Orbs[i]
		if o.Popped {
			continue
		}
		to := o.Pos.Sub(actor)
		dist := to.Len()
		if dist > f.tuning.SwingReach {
			continue
		}
		dot := facing.Dot(to.Normalize())
		if dot < f.tuning.SwingMinDot {
			continue
		}
		if score := dist*0.9 + (1-dot)*1.8; score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Throw launches a ball from origin along dir. It does nothing outside throw
// mode, during cooldown or once complete. Aim gating is up to the caller.
func (f *Field) Throw(origin, dir world.Vec3) bool {
	if !f.ThrowMode || f.Complete || f.Cooldown > 0 {
		return false
	}
	dir = dir.Normalize()
	f.Cooldown = f.tuning.ThrowCooldown
	f.Projectiles = append(f.Projectiles, Projectile{
		Pos:  origin.Add(dir.Scale(f.tuning.ThrowOffset)),
		Vel:  dir.Scale(f.tuning.ThrowSpeed),
		Life: f.tuning.ThrowLife,
	})
	return true
}

// Step advances the field by dt with the actor at actor. It returns the pops
// caused by projectiles this tick.
func (f *Field) Step(dt float64, actor world.Vec3) []Pop {
	f.clock += dt
	f.stepOrbs(dt, actor)
	f.collide()
	pops := f.stepProjectiles(dt)

	if f.Cooldown > 0 {
		f.Cooldown = math.Max(0, f.Cooldown-dt)
	}
	if f.Swinging {
		f.SwingTime += dt
		if f.SwingTime >= f.tuning.SwingDuration {
			f.Swinging = false
			f.SwingTime = 0
		}
	}
	return pops
}

func bounce(v *float64, p *float64, lo, hi, restitution float64) {
	if *p < lo {
		*p = lo
		*v *= -restitution
	}
	if *p > hi {
		*p = hi
		*v *= -restitution
	}
}

func (f *Field) stepOrbs(dt float64, actor world.Vec3) {
	t := f.tuning
	bound := t.RoomHalf - t.WallMargin
	yMax := t.WallHeight - t.FloatCeiling

	for i := range f.Orbs {
		o := &f.Orbs[i]
		if o.Popped {
			continue
		}

		if o.Floating {
			bob := 0.25 * math.Sin(f.clock*1.2+o.BobPhase)
			o.Vel.Y += (bob*0.6 - o.Vel.Y) * 0.25 * dt
			o.Vel = o.Vel.Scale(1 - 0.18*dt)
			o.Pos = o.Pos.Add(o.Vel.Scale(dt))
			bounce(&o.Vel.Y, &o.Pos.Y, t.FloatMinY, yMax, 0.55)
		} else {
			o.Vel.Y = 0
			o.Vel = o.Vel.Scale(1 - 0.28*dt)
			o.Pos = o.Pos.Add(o.Vel.Scale(dt))
			o.Pos.Y = o.Radius
		}

		bounce(&o.Vel.X, &o.Pos.X, -bound, bound, 0.7)
		bounce(&o.Vel.Z, &o.Pos.Z, -bound, bound, 0.7)

		away := o.Pos.Planar().Sub(actor.Planar())
		if distSq := away.LengthSq(); distSq < t.PersonalSpace*t.PersonalSpace {
			dist := math.Max(1e-5, math.Sqrt(distSq))
			n := away.Mult(1 / dist)
			push := t.PersonalSpace - dist
			o.Pos = o.Pos.WithPlanar(o.Pos.Planar().Add(n.Mult(push)))
			o.Vel = o.Vel.WithPlanar(o.Vel.Planar().Add(n.Mult(push * 1.2)))
		}

		o.Vel = o.Vel.Scale(t.Damping)
	}
}

// collide separates overlapping orbs and exchanges an equal-mass impulse
// along the contact normal when they approach.
func (f *Field) collide() {
	f.points = f.points[:0]
	for i := range f.Orbs {
		f.points = append(f.points, f.Orbs[i].Pos)
	}
	live := func(i int) bool { return !f.Orbs[i].Popped }

	f.hash.Pairs(f.points, live, func(i, j int) {
		a, b := &f.Orbs[i], &f.Orbs[j]
		d := b.Pos.Sub(a.Pos)
		rr := a.Radius + b.Radius
		distSq := d.LenSq()
		if distSq >= rr*rr {
			return
		}
		dist := math.Max(1e-5, math.Sqrt(distSq))
		n := d.Scale(1 / dist)
		push := (rr - dist) * 0.5
		a.Pos = a.Pos.Sub(n.Scale(push))
		b.Pos = b.Pos.Add(n.Scale(push))

		relVelN := b.Vel.Sub(a.Vel).Dot(n)
		if relVelN > 0 {
			return
		}
		impulse := -(1 + f.tuning.Restitution) * relVelN * 0.5
		a.Vel = a.Vel.Sub(n.Scale(impulse))
		b.Vel = b.Vel.Add(n.Scale(impulse))
	})
}

func (f *Field) stepProjectiles(dt float64) []Pop {
	if len(f.Projectiles) == 0 {
		return nil
	}
	t := f.tuning
	bound := t.RoomHalf - 1
	var pops []Pop

	kept := f.Projectiles[:0]
	for _, pr := range f.Projectiles {
		pr.Life -= dt
		if pr.Life <= 0 {
			continue
		}
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))
		p := pr.Pos
		if p.X < -bound || p.X > bound || p.Z < -bound || p.Z > bound || p.Y < 0.3 || p.Y > t.WallHeight-0.3 {
			continue
		}

		hit := false
		for i := range f.Orbs {
			o := &f.Orbs[i]
			if o.Popped {
				continue
			}
			rr := o.Radius + t.ThrowHitRadius
			if o.Pos.Sub(p).LenSq() < rr*rr {
				if pop, ok := f.Pop(i); ok {
					pops = append(pops, pop)
				}
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, pr)
		}
	}
	f.Projectiles = kept
	return pops
}
