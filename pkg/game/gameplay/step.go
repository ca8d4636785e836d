package gameplay

import (
	"log"

	"hiro/pkg/engine/input"
	"hiro/pkg/game/devtools"
	"hiro/pkg/game/state"
)

// Step advances the game by one frame. It returns false when the player
// asked to quit.
func (o *Orchestrator) Step(f input.Frame) bool {
	g := o.g
	g.Time += f.Dt

	g.Actor.Look(f.LookDX, f.LookDY)

	for _, a := range f.Actions {
		if a == input.ActionQuit {
			return false
		}
		o.handle(a)
		o.applyRequest()
	}

	g.Actor.Move(f.Forward, f.Strafe, f.Sprint, f.Dt)
	g.Actor.UpdateJump(f.Dt)

	if o.current != nil {
		o.current.Tick(g, f)
	}
	o.applyRequest()
	return true
}

// handle routes one discrete action: global keys first, then the level.
func (o *Orchestrator) handle(a input.Action) {
	g := o.g
	switch a {
	case input.ActionJump:
		g.Actor.Jump()

	case input.ActionConfirm:
		mode := g.PanelMode()
		switch {
		case mode == state.PanelNone:
		case mode == state.PanelError || o.current == nil:
			g.ClearPanel()
		default:
			o.current.Dismiss(g, mode)
		}

	case input.ActionCheat:
		if o.current != nil {
			o.current.Cheat(g)
			logMessage(g, "MSG_CHEAT")
		}

	case input.ActionReplay:
		if g.CanReplay {
			logMessage(g, "MSG_REPLAY")
			o.Restart()
		}

	case input.ActionDumpState:
		level, _ := o.current.(devtools.Describer)
		path, err := devtools.DumpState(o.DumpDir, g, level)
		if err != nil {
			log.Printf("State dump failed: %v", err)
			return
		}
		logMessage(g, "MSG_DUMPED", path)

	case input.ActionExportScene:
		path, err := devtools.ExportScene(o.DumpDir, g, o.Scene())
		if err != nil {
			log.Printf("Scene export failed: %v", err)
			return
		}
		logMessage(g, "MSG_EXPORTED", path)

	default:
		if o.current != nil {
			o.current.Handle(g, a)
		}
	}
}
