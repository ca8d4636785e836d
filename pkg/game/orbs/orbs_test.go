package orbs

import (
	"math"
	"math/rand"
	"testing"

	"hiro/pkg/engine/world"
)

// twoOrbField places a special orb straight ahead of an actor at the origin
// looking down -Z, and a plain orb behind it.
func twoOrbField() *Field {
	return New([]Orb{
		{ID: 0, Pos: world.V3(0, 2, -2), Radius: 0.6, Special: KeyA},
		{ID: 1, Pos: world.V3(0, 2, 2), Radius: 0.6},
	}, DefaultTuning())
}

func TestSpawnAssignsThreeDistinctSpecials(t *testing.T) {
	tun := DefaultTuning()
	f := Spawn(tun, rand.New(rand.NewSource(11)))
	if len(f.Orbs) != tun.Count {
		t.Fatalf("spawned %d orbs, want %d", len(f.Orbs), tun.Count)
	}
	seen := map[Key]int{}
	for i, o := range f.Orbs {
		if o.Special != KeyNone {
			seen[o.Special]++
		}
		if o.Floating != (i < tun.FloatingCount) {
			t.Errorf("orb %d Floating = %v", i, o.Floating)
		}
		if o.Radius < tun.MinRadius || o.Radius > tun.MaxRadius {
			t.Errorf("orb %d radius %v out of range", i, o.Radius)
		}
	}
	for _, k := range Keys {
		if seen[k] != 1 {
			t.Errorf("key %s assigned %d times", k, seen[k])
		}
	}

	again := Spawn(tun, rand.New(rand.NewSource(11)))
	for _, k := range Keys {
		if f.Special(k) != again.Special(k) {
			t.Errorf("key %s moved between identical seeds", k)
		}
	}
}

func TestPopIsIdempotent(t *testing.T) {
	f := twoOrbField()
	p, ok := f.Pop(0)
	if !ok || !p.NewFind || p.Count != 1 || p.Key != KeyA {
		t.Fatalf("first pop = %+v, %v", p, ok)
	}
	if _, ok := f.Pop(0); ok {
		t.Error("second pop succeeded")
	}
	if f.Found.Count != 1 || !f.Found.Has(KeyA) {
		t.Errorf("Found = %+v", f.Found)
	}
	if _, ok := f.Pop(7); ok {
		t.Error("out of range pop succeeded")
	}
}

func TestFoundCountMatchesSet(t *testing.T) {
	f := Spawn(DefaultTuning(), rand.New(rand.NewSource(5)))
	rng := rand.New(rand.NewSource(6))
	for step := 0; step < 200; step++ {
		f.Pop(rng.Intn(len(f.Orbs)))
		n := 0
		for _, k := range Keys {
			if f.Found.Has(k) {
				n++
			}
		}
		if n != f.Found.Count {
			t.Fatalf("Count = %d, set holds %d", f.Found.Count, n)
		}
	}
}

func TestCompletionLatchDisablesModes(t *testing.T) {
	f := Spawn(DefaultTuning(), rand.New(rand.NewSource(9)))
	f.ToggleWeapon()
	f.ToggleThrow()

	finishes := 0
	for _, k := range Keys {
		p, ok := f.Pop(f.Special(k))
		if !ok {
			t.Fatalf("pop of %s failed", k)
		}
		if p.Finished {
			finishes++
		}
	}
	if finishes != 1 || !f.Complete {
		t.Fatalf("finishes = %d Complete = %v", finishes, f.Complete)
	}
	if f.Equipped || f.ThrowMode {
		t.Error("weapon or throw mode survived completion")
	}
	if f.ToggleWeapon() || f.ToggleThrow() {
		t.Error("toggle allowed after completion")
	}
	if f.Throw(world.Vec3{}, world.V3(0, 0, -1)) {
		t.Error("throw allowed after completion")
	}
	if f.FindAll() {
		t.Error("FindAll latched twice")
	}
}

func TestFindAll(t *testing.T) {
	f := twoOrbField()
	if !f.FindAll() {
		t.Fatal("FindAll did not latch")
	}
	if f.Found.Count != 3 {
		t.Errorf("Count = %d, want 3", f.Found.Count)
	}
}

func TestSwing(t *testing.T) {
	tests := []struct {
		name    string
		equip   bool
		facing  world.Vec3
		wantHit int
	}{
		{"unequipped", false, world.V3(0, 0, -1), -1},
		{"ahead", true, world.V3(0, 0, -1), 0},
		{"behind", true, world.V3(0, 0, 1), 1},
		{"sideways", true, world.V3(1, 0, 0), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := twoOrbField()
			f.Equipped = tt.equip
			p, ok := f.Swing(world.V3(0, 2, 0), tt.facing)
			got := -1
			if ok {
				got = p.Index
			}
			if got != tt.wantHit {
				t.Errorf("hit %d, want %d", got, tt.wantHit)
			}
		})
	}
}

func TestSwingGatedUntilFinished(t *testing.T) {
	f := twoOrbField()
	f.Equipped = true
	f.Swing(world.V3(0, 2, 0), world.V3(1, 0, 0))
	if _, ok := f.Swing(world.V3(0, 2, 0), world.V3(0, 0, -1)); ok {
		t.Fatal("second swing landed mid-swing")
	}
	f.Step(f.Tuning().SwingDuration, world.V3(50, 2, 50))
	if _, ok := f.Swing(world.V3(0, 2, 0), world.V3(0, 0, -1)); !ok {
		t.Error("swing still gated after the swing finished")
	}
}

func TestThrowCooldownAndHit(t *testing.T) {
	f := New([]Orb{{ID: 0, Pos: world.V3(0, 2.2, -6), Radius: 0.6, Floating: true, Special: KeyB}}, DefaultTuning())
	if f.Throw(world.V3(0, 2, 0), world.V3(0, 0, -1)) {
		t.Fatal("throw outside throw mode")
	}
	f.ToggleThrow()
	if !f.Throw(world.V3(0, 2, 0), world.V3(0, 0, -1)) {
		t.Fatal("throw refused")
	}
	if f.Throw(world.V3(0, 2, 0), world.V3(0, 0, -1)) {
		t.Error("throw during cooldown")
	}

	var pops []Pop
	for i := 0; i < 60 && len(pops) == 0; i++ {
		pops = f.Step(1.0/60, world.V3(20, 2, 20))
	}
	if len(pops) != 1 || pops[0].Key != KeyB || !pops[0].NewFind {
		t.Fatalf("pops = %+v", pops)
	}
	if len(f.Projectiles) != 0 {
		t.Errorf("%d projectiles left after the hit", len(f.Projectiles))
	}
	if f.Cooldown != 0 {
		t.Errorf("Cooldown = %v, want 0", f.Cooldown)
	}
}

func TestProjectileExpires(t *testing.T) {
	f := New(nil, DefaultTuning())
	f.ToggleThrow()
	f.Throw(world.V3(0, 5, 0), world.V3(0, 0, -1))
	for i := 0; i < 200; i++ {
		f.Step(1.0/60, world.Vec3{})
	}
	if len(f.Projectiles) != 0 {
		t.Errorf("projectile still alive: %+v", f.Projectiles)
	}
}

func TestStepKeepsOrbsInBounds(t *testing.T) {
	tun := DefaultTuning()
	f := Spawn(tun, rand.New(rand.NewSource(21)))
	// Contact correction may briefly push an orb past a wall by up to one
	// pair's overlap.
	slack := 2 * tun.MaxRadius
	bound := tun.RoomHalf - tun.WallMargin + slack
	yMax := tun.WallHeight - tun.FloatCeiling + slack
	actor := world.V3(0, 2, 0)

	for step := 0; step < 600; step++ {
		f.Step(1.0/60, actor)
		for i, o := range f.Orbs {
			if math.Abs(o.Pos.X) > bound || math.Abs(o.Pos.Z) > bound {
				t.Fatalf("step %d: orb %d escaped to %v", step, i, o.Pos)
			}
			if o.Pos.Y < -slack || o.Pos.Y > yMax {
				t.Fatalf("step %d: orb %d at y %v", step, i, o.Pos.Y)
			}
		}
	}
}

func TestCollisionSeparatesApproachingOrbs(t *testing.T) {
	f := New([]Orb{
		{ID: 0, Pos: world.V3(0, 5, 0), Vel: world.V3(1, 0, 0), Radius: 1, Floating: true},
		{ID: 1, Pos: world.V3(1.5, 5, 0), Vel: world.V3(-1, 0, 0), Radius: 1, Floating: true},
	}, DefaultTuning())

	f.collide()
	a, b := f.Orbs[0], f.Orbs[1]
	if d := b.Pos.Sub(a.Pos).Len(); math.Abs(d-2) > 1e-9 {
		t.Errorf("separation = %v, want 2", d)
	}
	if a.Vel.X >= 0 || b.Vel.X <= 0 {
		t.Errorf("orbs still approaching: %v %v", a.Vel, b.Vel)
	}
	// Equal masses: momentum is conserved.
	if sum := a.Vel.X + b.Vel.X; math.Abs(sum) > 1e-9 {
		t.Errorf("momentum = %v, want 0", sum)
	}
	if want := 0.72; math.Abs(b.Vel.X-want) > 1e-9 {
		t.Errorf("rebound speed = %v, want %v", b.Vel.X, want)
	}
}

func TestActorPushesOrbsAway(t *testing.T) {
	f := New([]Orb{{ID: 0, Pos: world.V3(0.5, 0.6, 0), Radius: 0.6}}, DefaultTuning())
	f.Step(1.0/60, world.V3(0, 2, 0))
	if d := world.DistXZ(f.Orbs[0].Pos, world.Vec3{}); d < 1.4-1e-6 {
		t.Errorf("orb left %v from the actor, want >= 1.4", d)
	}
	if f.Orbs[0].Vel.X <= 0 {
		t.Errorf("orb not pushed outward: %v", f.Orbs[0].Vel)
	}
}
