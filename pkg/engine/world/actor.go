package world

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Movement tunables shared by every level.
type ActorTuning struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	LookSensitivity  float64 `yaml:"look_sensitivity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	LongJumpVelocity float64 `yaml:"long_jump_velocity"`
	DoubleTapWindow  float64 `yaml:"double_tap_window"`
	Gravity          float64 `yaml:"gravity"`
}

// DefaultActorTuning returns the stock movement feel.
func DefaultActorTuning() ActorTuning {
	return ActorTuning{
		MoveSpeed:        3,
		SprintMultiplier: 3,
		LookSensitivity:  0.0015,
		JumpVelocity:     7,
		LongJumpVelocity: 11,
		DoubleTapWindow:  0.25,
		Gravity:          20,
	}
}

// maxPitch keeps the view just short of straight up or down.
const maxPitch = math.Pi/2 - 0.1

// Actor is the first-person viewpoint the player drives.
type Actor struct {
	Pos   Vec3
	Yaw   float64
	Pitch float64

	// BaseHeight is the eye height when standing on the ground.
	BaseHeight float64

	Tuning ActorTuning

	jumpVelocity  float64
	airborne      bool
	sinceJumpTap  float64
	jumpTapWindow bool
}

// NewActor places an actor at pos facing -Z.
func NewActor(pos Vec3, tuning ActorTuning) *Actor {
	return &Actor{Pos: pos, BaseHeight: pos.Y, Tuning: tuning}
}

// Place moves the actor and resets its view and jump state.
func (a *Actor) Place(pos Vec3, yaw float64) {
	a.Pos = pos
	a.BaseHeight = pos.Y
	a.Yaw = yaw
	a.Pitch = 0
	a.jumpVelocity = 0
	a.airborne = false
	a.jumpTapWindow = false
}

// Look applies pointer deltas to yaw and pitch.
func (a *Actor) Look(dx, dy float64) {
	a.Yaw += dx * a.Tuning.LookSensitivity
	a.Pitch -= dy * a.Tuning.LookSensitivity
	a.Pitch = cp.Clamp(a.Pitch, -maxPitch, maxPitch)
}

// Facing is the unit view direction including pitch.
func (a *Actor) Facing() Vec3 {
	cosPitch := math.Cos(a.Pitch)
	return Vec3{
		X: math.Sin(a.Yaw) * cosPitch,
		Y: math.Sin(a.Pitch),
		Z: -math.Cos(a.Yaw) * cosPitch,
	}
}

// Forward is the facing direction flattened onto the ground plane.
func (a *Actor) Forward() Vec3 {
	return Vec3{X: math.Sin(a.Yaw), Z: -math.Cos(a.Yaw)}
}

// Right is perpendicular to Forward on the ground plane.
func (a *Actor) Right() Vec3 {
	return Vec3{X: math.Cos(a.Yaw), Z: math.Sin(a.Yaw)}
}

// Move walks the actor. forward and strafe are in [-1, 1]; diagonal input is
// normalised so it is no faster than straight input. Returns the distance moved.
func (a *Actor) Move(forward, strafe float64, sprint bool, dt float64) float64 {
	if forward == 0 && strafe == 0 {
		return 0
	}
	dir := a.Forward().Scale(forward).Add(a.Right().Scale(strafe))
	if dir.LenSq() == 0 {
		return 0
	}
	speed := a.Tuning.MoveSpeed
	if sprint {
		speed *= a.Tuning.SprintMultiplier
	}
	step := dir.Normalize().Scale(speed * dt)
	a.Pos = a.Pos.Add(step)
	return step.Len()
}

// Jump starts a jump when grounded. A second press inside the double-tap
// window gives the long jump.
func (a *Actor) Jump() {
	if !a.airborne {
		v := a.Tuning.JumpVelocity
		if a.jumpTapWindow && a.sinceJumpTap < a.Tuning.DoubleTapWindow {
			v = a.Tuning.LongJumpVelocity
		}
		a.jumpVelocity = v
		a.airborne = true
	}
	a.sinceJumpTap = 0
	a.jumpTapWindow = true
}

// Airborne reports whether the actor is above its base height.
func (a *Actor) Airborne() bool {
	return a.airborne
}

// UpdateJump integrates vertical motion under gravity and lands on BaseHeight.
func (a *Actor) UpdateJump(dt float64) {
	a.sinceJumpTap += dt
	if !a.airborne && a.jumpVelocity == 0 {
		return
	}
	a.jumpVelocity -= a.Tuning.Gravity * dt
	a.Pos.Y += a.jumpVelocity * dt
	if a.Pos.Y <= a.BaseHeight {
		a.Pos.Y = a.BaseHeight
		a.jumpVelocity = 0
		a.airborne = false
	}
}

// ClampSquare keeps the actor inside |x|,|z| <= limit.
func (a *Actor) ClampSquare(limit float64) {
	a.Pos.X = cp.Clamp(a.Pos.X, -limit, limit)
	a.Pos.Z = cp.Clamp(a.Pos.Z, -limit, limit)
}

// ClampRadius keeps the actor within radius of the origin on the ground plane.
func (a *Actor) ClampRadius(radius float64) {
	p := a.Pos.Planar()
	if p.Length() <= radius {
		return
	}
	a.Pos = a.Pos.WithPlanar(p.Normalize().Mult(radius))
}
