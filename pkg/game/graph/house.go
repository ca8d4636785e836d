package graph

import (
	"math"

	"hiro/pkg/engine/world"
)

// HouseTuning shapes the walls around the board.
type HouseTuning struct {
	WallHeight    float64 `yaml:"wall_height"`
	WallThickness float64 `yaml:"wall_thickness"`
	DoorRow       int     `yaml:"door_row"`
	DoorCol       int     `yaml:"door_col"`
	DoorHeight    float64 `yaml:"door_height"`
	ActorRadius   float64 `yaml:"actor_radius"`
	YGrace        float64 `yaml:"y_grace"`
	OutsideMargin float64 `yaml:"outside_margin"`
	DoorHalfX     float64 `yaml:"door_half_x"`
	DoorHalfZ     float64 `yaml:"door_half_z"`
}

// DefaultHouseTuning returns the stock house.
func DefaultHouseTuning() HouseTuning {
	return HouseTuning{
		WallHeight:    5,
		WallThickness: 0.4,
		DoorRow:       4,
		DoorCol:       4,
		DoorHeight:    3.2,
		ActorRadius:   0.38,
		YGrace:        0.10,
		OutsideMargin: 6,
		DoorHalfX:     1.1,
		DoorHalfZ:     0.45,
	}
}

// House is the solid shell around the board: three full walls and a front
// wall broken by one tile-wide doorway under a lintel.
type House struct {
	Boxes []world.Box
	// Door is the exit trigger, live only after the puzzle completes.
	Door world.Zone
	// Limit is the square clamp for the actor.
	Limit  float64
	tuning HouseTuning
}

// BuildHouse lays out colliders for a house fitted to grid.
func BuildHouse(grid *world.TileGrid, t HouseTuning) House {
	halfW, halfD := grid.HalfWidth(), grid.HalfDepth()
	width, depth := halfW*2, halfD*2
	h, th := t.WallHeight, t.WallThickness
	yMid := h / 2

	door := grid.ToWorld(t.DoorRow, t.DoorCol)
	doorHalf := grid.Step() / 2

	boxes := []world.Box{
		world.NewBox(world.V3(0, yMid, -halfD-th/2), width, h, th),
		world.NewBox(world.V3(-halfW-th/2, yMid, 0), th, h, depth),
		world.NewBox(world.V3(halfW+th/2, yMid, 0), th, h, depth),
	}

	frontZ := halfD + th/2
	leftWidth := (door.X - doorHalf) + halfW
	rightWidth := halfW - (door.X + doorHalf)
	if leftWidth > 0.001 {
		boxes = append(boxes, world.NewBox(world.V3((-halfW+door.X-doorHalf)/2, yMid, frontZ), leftWidth, h, th))
	}
	if rightWidth > 0.001 {
		boxes = append(boxes, world.NewBox(world.V3((door.X+doorHalf+halfW)/2, yMid, frontZ), rightWidth, h, th))
	}
	lintel := h - t.DoorHeight
	boxes = append(boxes, world.NewBox(world.V3(door.X, t.DoorHeight+lintel/2, frontZ), grid.Step(), lintel, th))

	return House{
		Boxes: boxes,
		Door: world.Zone{
			ID:     "door",
			Center: world.V3(door.X, 0, halfD-0.02),
			Shape:  world.ShapeRect,
			HalfX:  t.DoorHalfX,
			HalfZ:  t.DoorHalfZ,
		},
		Limit:  math.Max(halfW, halfD) + t.OutsideMargin,
		tuning: t,
	}
}

// Resolve pushes the actor out of the walls and clamps it to the yard.
func (h House) Resolve(a *world.Actor) {
	a.Pos, _ = world.ResolvePenetration(a.Pos, h.tuning.ActorRadius, h.tuning.YGrace, h.Boxes)
	a.ClampSquare(h.Limit)
}

// Spawn places the actor just outside the doorway, looking at target.
func (h House) Spawn(grid *world.TileGrid, a *world.Actor, eyeHeight float64, target world.Vec3) {
	door := grid.ToWorld(h.tuning.DoorRow, h.tuning.DoorCol)
	a.Place(world.V3(door.X, eyeHeight, door.Z+1.2), 0)
	LookAt(a, target)
}

// LookAt turns the actor toward target.
func LookAt(a *world.Actor, target world.Vec3) {
	dir := target.Sub(a.Pos).Normalize()
	a.Yaw = math.Atan2(dir.X, -dir.Z)
	a.Pitch = math.Asin(dir.Y)
}
