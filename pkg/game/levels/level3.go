package levels

import (
	"fmt"
	"io"
	"log"

	"hiro/pkg/engine/input"
	"hiro/pkg/engine/world"
	"hiro/pkg/game/config"
	"hiro/pkg/game/graph"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// Level3 is the bond puzzle: walk between pedestals inside the house to
// redraw each bond, then leave through the door.
type Level3 struct {
	cfg    config.Level3
	Puzzle *graph.Puzzle
	House  graph.House
}

// NewLevel3 creates the level. Nothing is built until Init.
func NewLevel3() *Level3 {
	return &Level3{}
}

// Init builds the board and the house around it. A topology that fails
// validation is replaced by the stock one.
func (l *Level3) Init(g *state.Game) {
	l.cfg = g.Config.Clone().Level3

	p, err := graph.New(l.cfg.Topology)
	if err != nil {
		log.Printf("level 3: %v, using the default topology", err)
		p, err = graph.New(graph.DefaultTopology())
		if err != nil {
			panic(fmt.Sprintf("level 3: default topology: %v", err))
		}
	}
	l.Puzzle = p
	l.House = graph.BuildHouse(p.Grid, l.cfg.House)
	l.House.Spawn(p.Grid, g.Actor, l.cfg.EyeHeight, world.V3(0, 1.5, 0))

	showIDs(g, state.PanelIntro, "L3_INTRO_TITLE", "L3_INTRO_BODY", "L3_INTRO_HINT")
	l.updateHUD(g)
}

// Tick keeps the actor out of the walls and opens the door once every bond
// is drawn.
func (l *Level3) Tick(g *state.Game, f input.Frame) {
	l.House.Resolve(g.Actor)
	if l.Puzzle.AllComplete && l.House.Door.Contains(g.Actor.Pos) {
		g.ClearPanel()
		g.RequestLevel(4)
	}
	l.updateHUD(g)
}

func (l *Level3) updateHUD(g *state.Game) {
	g.HUD = text.Get("L3_HUD", l.Puzzle.CompletedCount(), len(l.Puzzle.Connections))
}

// Handle runs the two-press bond protocol on Interact.
func (l *Level3) Handle(g *state.Game, a input.Action) bool {
	if a != input.ActionInteract {
		return false
	}
	r := l.Puzzle.Interact(g.Actor.Pos)
	switch r.Outcome {
	case graph.OutcomeSealed:
		showIDs(g, state.PanelInfo, "L3_NONE_TITLE", "L3_SEALED_BODY", "L3_NONE_HINT")
	case graph.OutcomeNothingNear:
		showIDs(g, state.PanelInfo, "L3_NONE_TITLE", "L3_NOTHING_BODY", "L3_NONE_HINT")
	case graph.OutcomeStarted:
		g.ShowPanel(state.PanelConnection,
			text.Get("L3_STARTED_TITLE"),
			text.Get("L3_STARTED_BODY", r.Start.Name, r.Target.Name),
			text.Get("L3_STARTED_HINT"))
	case graph.OutcomeIncomplete:
		g.ShowPanel(state.PanelConnection,
			text.Get("L3_INCOMPLETE_TITLE"),
			text.Get("L3_INCOMPLETE_BODY", r.Target.Name),
			text.Get("L3_INCOMPLETE_HINT"))
	case graph.OutcomeCompleted:
		showIDs(g, state.PanelConnection, "L3_LOCKED_TITLE", "L3_LOCKED_BODY", "L3_LOCKED_HINT")
	case graph.OutcomeAllComplete:
		l.showComplete(g)
	default:
		return false
	}
	l.updateHUD(g)
	return true
}

func (l *Level3) showComplete(g *state.Game) {
	showIDs(g, state.PanelConnection, "L3_COMPLETE_TITLE", "L3_COMPLETE_BODY", "L3_COMPLETE_HINT")
}

// Dismiss closes the intro and moves on once the board is solved. Bond and
// hint panels stay up until the next interaction replaces them.
func (l *Level3) Dismiss(g *state.Game, mode state.PanelMode) {
	switch {
	case l.Puzzle.AllComplete:
		g.ClearPanel()
		g.RequestLevel(4)
	case mode == state.PanelIntro:
		g.ClearPanel()
	}
}

// Cheat draws every remaining bond.
func (l *Level3) Cheat(g *state.Game) {
	if l.Puzzle.Complete() {
		l.showComplete(g)
	} else {
		g.ClearPanel()
		g.RequestLevel(4)
	}
	l.updateHUD(g)
}

// Teardown drops the board.
func (l *Level3) Teardown(g *state.Game) {
	l.Puzzle = nil
	l.House = graph.House{}
}

// Scene lists the tiles, pedestals and walls. The door glows once the board
// is solved.
func (l *Level3) Scene(g *state.Game) scenefile.Scene {
	s := scenefile.Scene{Cameras: camera(g)}
	if l.Puzzle == nil {
		return s
	}
	s.Objects = append(s.Objects, floor(l.House.Limit))

	grid := l.Puzzle.Grid
	size := grid.Step() * 0.92
	grid.ForEachCell(func(row, col int, cell *world.Cell) {
		color := colorTile
		if cell.Painted() {
			color = cell.Color
		}
		s.Objects = append(s.Objects, scenefile.Cube(grid.ToWorld(row, col), world.V3(size, 0.05, size), color))
	})
	for _, n := range l.Puzzle.Nodes {
		r := 0.45
		if n.Highlight {
			r = 0.6
		}
		s.Objects = append(s.Objects, scenefile.Sphere(n.Position.Add(world.V3(0, 1, 0)), r, n.Color))
	}
	for _, b := range l.House.Boxes {
		s.Objects = append(s.Objects, scenefile.Cube(b.Center(), b.Size(), colorWall))
	}
	if l.Puzzle.AllComplete {
		d := l.House.Door
		s.Objects = append(s.Objects, scenefile.Cube(d.Center.Add(world.V3(0, 1.5, 0)), world.V3(d.HalfX*2, 3, d.HalfZ*2), colorPortal))
	}
	return s
}

// Describe writes the board state for a debug dump.
func (l *Level3) Describe(w io.Writer, g *state.Game) {
	describeActor(w, g)
	if l.Puzzle == nil {
		return
	}
	p := l.Puzzle
	fmt.Fprintf(w, "bonds: %d / %d\n", p.CompletedCount(), len(p.Connections))
	fmt.Fprintf(w, "all_complete: %v\n", p.AllComplete)
	if p.Session.Drawing {
		fmt.Fprintf(w, "drawing: %s from %s\n", p.Session.Active.ID, p.Session.StartID)
	}
	fmt.Fprintln(w, "connections:")
	for _, c := range p.Connections {
		fmt.Fprintf(w, "  id: %s %s-%s terminal: %v completed: %v\n", c.ID, c.FromID, c.ToID, c.Terminal, c.Completed)
	}

	// Board, one character per tile: N node, # painted, . blank.
	fmt.Fprintln(w, "board:")
	for row := 0; row < p.Grid.Rows(); row++ {
		line := make([]byte, 0, p.Grid.Cols())
		for col := 0; col < p.Grid.Cols(); col++ {
			cell := p.Grid.GetCell(row, col)
			switch {
			case cell.Node:
				line = append(line, 'N')
			case cell.Painted():
				line = append(line, '#')
			default:
				line = append(line, '.')
			}
		}
		fmt.Fprintf(w, "  %s\n", line)
	}
}
