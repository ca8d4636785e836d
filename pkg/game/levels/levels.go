// Package levels adapts the four mechanics to the shared game state: each
// level owns its scene, turns mechanic outcomes into narrative panels and
// requests the next level when it is done.
package levels

import (
	"fmt"
	"io"

	"hiro/pkg/engine/world"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// Scene colors.
const (
	colorFloor    uint32 = 0x1b1b24
	colorWall     uint32 = 0x555566
	colorPortal   uint32 = 0x00ffee
	colorFootstep uint32 = 0x88aacc
	colorDim      uint32 = 0x224455
	colorSeen     uint32 = 0x335566
	colorEye      uint32 = 0xd8d0c0
	colorClue     uint32 = 0xffd35b
	colorTile     uint32 = 0x2a2a33
	colorOrb      uint32 = 0xdde3ea
	colorBall     uint32 = 0xcc2222
)

// showIDs fills the panel from three message ids that take no arguments.
func showIDs(g *state.Game, mode state.PanelMode, title, body, hint string) {
	g.ShowPanel(mode, text.Get(title), text.Get(body), text.Get(hint))
}

// camera is the actor's view for scene dumps.
func camera(g *state.Game) []scenefile.Matrix {
	return []scenefile.Matrix{scenefile.View(g.Actor.Pos, g.Actor.Facing())}
}

func floor(half float64) scenefile.Object {
	return scenefile.Cube(world.V3(0, -0.05, 0), world.V3(half*2, 0.1, half*2), colorFloor)
}

func describeActor(w io.Writer, g *state.Game) {
	a := g.Actor
	fmt.Fprintf(w, "actor_pos: %.2f,%.2f,%.2f\n", a.Pos.X, a.Pos.Y, a.Pos.Z)
	fmt.Fprintf(w, "actor_yaw: %.3f\n", a.Yaw)
	fmt.Fprintf(w, "actor_pitch: %.3f\n", a.Pitch)
	fmt.Fprintf(w, "actor_airborne: %v\n", a.Airborne())
}
