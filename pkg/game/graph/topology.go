package graph

import (
	"errors"
	"fmt"

	"hiro/pkg/engine/world"
)

// NodeSpec describes a pedestal on the board.
type NodeSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Color uint32 `yaml:"color"`
}

// ConnectionSpec describes a bond between two nodes and the tiles it paints,
// listed from From to To.
type ConnectionSpec struct {
	ID          string   `yaml:"id"`
	From        string   `yaml:"from"`
	To          string   `yaml:"to"`
	Path        [][2]int `yaml:"path"`
	ColorSource string   `yaml:"color_source"`
	Terminal    bool     `yaml:"terminal"`
}

// Topology is the full puzzle layout.
type Topology struct {
	Rows        int              `yaml:"rows"`
	Cols        int              `yaml:"cols"`
	Step        float64          `yaml:"step"`
	Reach       float64          `yaml:"reach"`
	Nodes       []NodeSpec       `yaml:"nodes"`
	Connections []ConnectionSpec `yaml:"connections"`
	// Prerequisites gate every terminal connection.
	Prerequisites []string `yaml:"prerequisites"`
}

func reversed(path [][2]int) [][2]int {
	out := make([][2]int, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}

// DefaultTopology returns the family-hierarchy board.
func DefaultTopology() Topology {
	sideLohith := [][2]int{{2, 0}, {1, 0}, {1, 1}, {2, 1}, {3, 1}, {3, 0}, {4, 0}, {4, 1}, {4, 2}}
	sideGang := [][2]int{{2, 4}, {1, 4}, {1, 3}, {2, 3}, {3, 3}, {3, 4}, {4, 4}, {4, 3}, {4, 2}}

	return Topology{
		Rows:  5,
		Cols:  5,
		Step:  2,
		Reach: 1.6,
		Nodes: []NodeSpec{
			{ID: "ram", Name: "Ram", Row: 2, Col: 2, Color: 0xffffff},
			{ID: "vehaan", Name: "Vehaan", Row: 0, Col: 2, Color: 0x4aa3ff},
			{ID: "chitti", Name: "Chitti", Row: 0, Col: 0, Color: 0x4dff88},
			{ID: "balaram", Name: "Balaram Naidu", Row: 0, Col: 4, Color: 0xffd35b},
			{ID: "shiven", Name: "Shiven", Row: 4, Col: 2, Color: 0xff8a3a},
			{ID: "lohith", Name: "Lohith", Row: 2, Col: 0, Color: 0xb080ff},
			{ID: "gang", Name: "Shiven’s Side Gang", Row: 2, Col: 4, Color: 0x4dffe6},
		},
		Connections: []ConnectionSpec{
			{ID: "vehaan-chitti", From: "vehaan", To: "chitti", Path: [][2]int{{0, 2}, {0, 1}, {0, 0}}, ColorSource: "chitti"},
			{ID: "vehaan-balaram", From: "vehaan", To: "balaram", Path: [][2]int{{0, 2}, {0, 3}, {0, 4}}, ColorSource: "balaram"},
			{ID: "shiven-lohith", From: "shiven", To: "lohith", Path: reversed(sideLohith), ColorSource: "lohith"},
			{ID: "shiven-gang", From: "shiven", To: "gang", Path: reversed(sideGang), ColorSource: "gang"},
			{ID: "shiven-ram", From: "shiven", To: "ram", Path: [][2]int{{4, 2}, {3, 2}, {2, 2}}, ColorSource: "shiven", Terminal: true},
			{ID: "vehaan-ram", From: "vehaan", To: "ram", Path: [][2]int{{0, 2}, {1, 2}, {2, 2}}, ColorSource: "vehaan", Terminal: true},
		},
		Prerequisites: []string{"vehaan-chitti", "vehaan-balaram", "shiven-lohith", "shiven-gang"},
	}
}

// Validate checks that the topology is self-consistent: nodes are unique and
// on the board, every connection joins two known nodes with a contiguous path
// from From to To, and prerequisites name non-terminal connections.
func (t Topology) Validate() error {
	grid, err := world.NewTileGrid(t.Rows, t.Cols, t.Step)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if t.Reach <= 0 {
		return errors.New("graph: reach must be positive")
	}

	nodes := make(map[string]NodeSpec, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.ID == "" {
			return errors.New("graph: node with empty id")
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("graph: duplicate node %q", n.ID)
		}
		if !grid.IsValidPosition(n.Row, n.Col) {
			return fmt.Errorf("graph: node %q at (%d,%d) is off the board", n.ID, n.Row, n.Col)
		}
		nodes[n.ID] = n
	}

	conns := make(map[string]ConnectionSpec, len(t.Connections))
	for _, c := range t.Connections {
		if _, dup := conns[c.ID]; dup {
			return fmt.Errorf("graph: duplicate connection %q", c.ID)
		}
		from, ok := nodes[c.From]
		if !ok {
			return fmt.Errorf("graph: connection %q: unknown node %q", c.ID, c.From)
		}
		to, ok := nodes[c.To]
		if !ok {
			return fmt.Errorf("graph: connection %q: unknown node %q", c.ID, c.To)
		}
		if msg := grid.ValidatePath(c.Path); msg != "" {
			return fmt.Errorf("graph: connection %q: %s", c.ID, msg)
		}
		first, last := c.Path[0], c.Path[len(c.Path)-1]
		if first != [2]int{from.Row, from.Col} || last != [2]int{to.Row, to.Col} {
			return fmt.Errorf("graph: connection %q: path must run from %s to %s", c.ID, c.From, c.To)
		}
		if c.ColorSource != "" {
			if _, ok := nodes[c.ColorSource]; !ok {
				return fmt.Errorf("graph: connection %q: unknown color source %q", c.ID, c.ColorSource)
			}
		}
		conns[c.ID] = c
	}

	for _, id := range t.Prerequisites {
		c, ok := conns[id]
		if !ok {
			return fmt.Errorf("graph: unknown prerequisite %q", id)
		}
		if c.Terminal {
			return fmt.Errorf("graph: prerequisite %q is itself terminal", id)
		}
	}
	return nil
}
