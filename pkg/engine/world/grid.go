package world

import "fmt"

// TileGrid is a square-celled board laid on the ground plane. Row 0 is the
// far (-Z) edge and column 0 the left (-X) edge.
type TileGrid struct {
	cells [][]*Cell
	rows  int
	cols  int
	step  float64
}

// NewTileGrid creates a rows x cols grid whose tiles are step world units wide,
// centered on the origin.
func NewTileGrid(rows, cols int, step float64) (*TileGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("world: grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if step <= 0 {
		return nil, fmt.Errorf("world: grid step must be positive, got %v", step)
	}

	g := &TileGrid{rows: rows, cols: cols, step: step}
	g.cells = make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		g.cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			g.cells[r][c] = NewCell(r, c)
		}
	}
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *TileGrid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *TileGrid) Cols() int {
	return g.cols
}

// Step returns the tile width in world units
func (g *TileGrid) Step() float64 {
	return g.step
}

// HalfWidth is half of the board's X extent.
func (g *TileGrid) HalfWidth() float64 {
	return float64(g.cols) * g.step / 2
}

// HalfDepth is half of the board's Z extent.
func (g *TileGrid) HalfDepth() float64 {
	return float64(g.rows) * g.step / 2
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *TileGrid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *TileGrid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// ToWorld returns the world-space center of a tile at ground level.
func (g *TileGrid) ToWorld(row, col int) Vec3 {
	return Vec3{
		X: -g.HalfWidth() + g.step/2 + float64(col)*g.step,
		Z: -g.HalfDepth() + g.step/2 + float64(row)*g.step,
	}
}

// MarkNode flags a tile as a shared junction. Returns false if out of bounds.
func (g *TileGrid) MarkNode(row, col int) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	cell.Node = true
	return true
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *TileGrid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(row, col, g.cells[row][col])
		}
	}
}

// ValidatePath checks that every step of a path stays on the grid and moves
// to an orthogonal neighbour. It returns an error description or empty string.
func (g *TileGrid) ValidatePath(path [][2]int) string {
	if len(path) == 0 {
		return "path is empty"
	}
	for i, p := range path {
		if !g.IsValidPosition(p[0], p[1]) {
			return fmt.Sprintf("step %d (%d,%d) is off the grid", i, p[0], p[1])
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		if _, ok := DirectionBetween(prev[0], prev[1], p[0], p[1]); !ok {
			return fmt.Sprintf("step %d (%d,%d) is not adjacent to (%d,%d)", i, p[0], p[1], prev[0], prev[1])
		}
	}
	return ""
}
