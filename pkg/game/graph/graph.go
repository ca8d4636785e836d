// Package graph implements the bond-drawing puzzle: pedestals on a tile
// board joined by fixed paths, with terminal bonds gated behind the rest.
package graph

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"hiro/pkg/engine/world"
)

// Node is a pedestal.
type Node struct {
	ID       string
	Name     string
	Row      int
	Col      int
	Position world.Vec3
	Color    uint32

	// Highlight is cosmetic: set on both endpoints of the bond being drawn.
	Highlight bool

	zone int
}

// Connection is a bond between two nodes.
type Connection struct {
	ID          string
	FromID      string
	ToID        string
	Path        []*world.Cell
	ColorSource string
	Terminal    bool
	Completed   bool
}

// Other returns the endpoint opposite id.
func (c *Connection) Other(id string) string {
	if id == c.FromID {
		return c.ToID
	}
	return c.FromID
}

// Session is the in-progress drawing. Drawing is true exactly when Active and
// StartID are set.
type Session struct {
	Drawing bool
	Active  *Connection
	StartID string
}

func (s *Session) reset() {
	*s = Session{}
}

// Puzzle is the whole board state.
type Puzzle struct {
	Grid        *world.TileGrid
	Nodes       []*Node
	Connections []*Connection
	Session     Session
	// AllComplete latches once every connection is done.
	AllComplete bool

	byID          map[string]*Node
	completed     mapset.Set[string]
	prerequisites []string
	// zones holds one reach circle per node, in node order.
	zones []world.Zone
}

// New builds a puzzle from a topology. The topology is validated first.
func New(t Topology) (*Puzzle, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	grid, err := world.NewTileGrid(t.Rows, t.Cols, t.Step)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}

	p := &Puzzle{
		Grid:          grid,
		byID:          make(map[string]*Node, len(t.Nodes)),
		completed:     mapset.New[string](),
		prerequisites: append([]string(nil), t.Prerequisites...),
	}
	for _, ns := range t.Nodes {
		n := &Node{
			ID:       ns.ID,
			Name:     ns.Name,
			Row:      ns.Row,
			Col:      ns.Col,
			Position: grid.ToWorld(ns.Row, ns.Col),
			Color:    ns.Color,
			zone:     len(p.zones),
		}
		p.zones = append(p.zones, world.Zone{
			ID:     n.ID,
			Index:  n.zone,
			Center: n.Position,
			Radius: t.Reach,
			Shape:  world.ShapeCircle,
		})
		grid.MarkNode(ns.Row, ns.Col)
		p.Nodes = append(p.Nodes, n)
		p.byID[n.ID] = n
	}
	for _, cs := range t.Connections {
		c := &Connection{
			ID:          cs.ID,
			FromID:      cs.From,
			ToID:        cs.To,
			ColorSource: cs.ColorSource,
			Terminal:    cs.Terminal,
		}
		for _, rc := range cs.Path {
			c.Path = append(c.Path, grid.GetCell(rc[0], rc[1]))
		}
		p.Connections = append(p.Connections, c)
	}
	return p, nil
}

// Node returns the node with the given id, or nil.
func (p *Puzzle) Node(id string) *Node {
	return p.byID[id]
}

// Connection returns the connection with the given id, or nil.
func (p *Puzzle) Connection(id string) *Connection {
	for _, c := range p.Connections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CompletedCount is the number of finished connections.
func (p *Puzzle) CompletedCount() int {
	return p.completed.Size()
}

func (p *Puzzle) prerequisitesDone() bool {
	for _, id := range p.prerequisites {
		if !p.completed.Has(id) {
			return false
		}
	}
	return true
}

// CanStart reports whether c may be started now.
func (p *Puzzle) CanStart(c *Connection) bool {
	if c.Completed {
		return false
	}
	return !c.Terminal || p.prerequisitesDone()
}

func (p *Puzzle) near(actor world.Vec3, id string) bool {
	return p.zones[p.byID[id].zone].Contains(actor)
}

// startableAt returns the first startable connection touching node id.
func (p *Puzzle) startableAt(id string) *Connection {
	for _, c := range p.Connections {
		if (c.FromID == id || c.ToID == id) && p.CanStart(c) {
			return c
		}
	}
	return nil
}

func (p *Puzzle) sealedAt(id string) bool {
	for _, c := range p.Connections {
		if (c.FromID == id || c.ToID == id) && !c.Completed && !p.CanStart(c) {
			return true
		}
	}
	return false
}

// findStartable picks the node within reach that is closest to the actor and
// has a startable connection, and returns that connection started from it.
// Ties keep the earlier node, then the earlier connection.
func (p *Puzzle) findStartable(actor world.Vec3) (*Connection, string) {
	i := world.ClosestSatisfied(actor, p.zones, func(z *world.Zone) bool {
		return p.startableAt(z.ID) != nil
	})
	if i < 0 {
		return nil, ""
	}
	id := p.zones[i].ID
	return p.startableAt(id), id
}

// sealedNearby reports whether a gated, unfinished connection has an endpoint
// within reach.
func (p *Puzzle) sealedNearby(actor world.Vec3) bool {
	return world.FirstSatisfied(actor, p.zones, func(z *world.Zone) bool {
		return p.sealedAt(z.ID)
	}) >= 0
}

// Outcome says what an interaction did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSealed
	OutcomeNothingNear
	OutcomeStarted
	OutcomeIncomplete
	OutcomeCompleted
	OutcomeAllComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSealed:
		return "sealed"
	case OutcomeNothingNear:
		return "nothing-near"
	case OutcomeStarted:
		return "started"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeCompleted:
		return "completed"
	case OutcomeAllComplete:
		return "all-complete"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports an interaction. Start and Target are the endpoints of the
// connection involved, when there is one.
type Result struct {
	Outcome    Outcome
	Connection *Connection
	Start      *Node
	Target     *Node
}

// Interact runs the two-press protocol: the first press near a pedestal
// starts a bond, the second press near the opposite pedestal finishes it.
func (p *Puzzle) Interact(actor world.Vec3) Result {
	if p.AllComplete {
		return Result{Outcome: OutcomeIgnored}
	}

	if !p.Session.Drawing {
		c, start := p.findStartable(actor)
		if c == nil {
			if p.sealedNearby(actor) {
				return Result{Outcome: OutcomeSealed}
			}
			return Result{Outcome: OutcomeNothingNear}
		}
		p.Session = Session{Drawing: true, Active: c, StartID: start}
		p.highlight(start, c.Other(start))
		return Result{
			Outcome:    OutcomeStarted,
			Connection: c,
			Start:      p.byID[start],
			Target:     p.byID[c.Other(start)],
		}
	}

	c, start := p.Session.Active, p.Session.StartID
	if c == nil || start == "" {
		p.Session.reset()
		return Result{Outcome: OutcomeIgnored}
	}
	target := c.Other(start)
	res := Result{Connection: c, Start: p.byID[start], Target: p.byID[target]}
	if !p.near(actor, target) {
		res.Outcome = OutcomeIncomplete
		return res
	}

	p.finalize(c, start)
	p.Session.reset()
	if p.latchAllComplete() {
		res.Outcome = OutcomeAllComplete
		return res
	}
	res.Outcome = OutcomeCompleted
	return res
}

func (p *Puzzle) highlight(ids ...string) {
	for _, n := range p.Nodes {
		n.Highlight = false
		for _, id := range ids {
			if n.ID == id {
				n.Highlight = true
			}
		}
	}
}

// finalize paints the connection's tiles in the direction it was drawn.
// Plain tiles already claimed by another bond keep their owner.
func (p *Puzzle) finalize(c *Connection, start string) {
	color := uint32(0xffffff)
	if src := p.byID[c.ColorSource]; src != nil {
		color = src.Color
	} else if from := p.byID[c.FromID]; from != nil {
		color = from.Color
	}

	n := len(c.Path)
	for i := 0; i < n; i++ {
		cell := c.Path[i]
		if start != c.FromID {
			cell = c.Path[n-1-i]
		}
		if cell == nil {
			continue
		}
		cell.Paint(c.ID, color)
	}
	c.Completed = true
	p.completed.Put(c.ID)
}

func (p *Puzzle) latchAllComplete() bool {
	if p.AllComplete || p.completed.Size() < len(p.Connections) {
		return false
	}
	p.AllComplete = true
	p.highlight()
	return true
}

// Complete finishes every remaining bond. Used by the skip key. It reports
// whether this call latched completion.
func (p *Puzzle) Complete() bool {
	for _, c := range p.Connections {
		if !c.Completed {
			p.finalize(c, c.FromID)
		}
	}
	p.Session.reset()
	return p.latchAllComplete()
}
