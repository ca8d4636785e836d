package world

// Cell is a single tile of a TileGrid.
type Cell struct {
	Row int
	Col int

	// Node tiles are shared junctions; any path may repaint them.
	Node bool

	// Owner is the id of the path that painted this tile, empty if unpainted.
	Owner string
	// Color is the painted color as 0xRRGGBB.
	Color uint32
}

// NewCell creates an unpainted cell at the given position.
func NewCell(row, col int) *Cell {
	return &Cell{Row: row, Col: col}
}

// Painted reports whether any path has claimed this cell.
func (c *Cell) Painted() bool {
	return c.Owner != ""
}

// CanPaint reports whether the path with the given owner id may paint this
// cell. Node tiles accept anyone; other tiles only their first owner.
func (c *Cell) CanPaint(owner string) bool {
	return c.Node || c.Owner == "" || c.Owner == owner
}

// Paint claims the cell for owner. It returns false and leaves the cell
// untouched when another path already owns a non-node tile.
func (c *Cell) Paint(owner string, color uint32) bool {
	if !c.CanPaint(owner) {
		return false
	}
	c.Owner = owner
	c.Color = color
	return true
}
