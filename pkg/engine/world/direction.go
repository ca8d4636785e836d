package world

// Direction is one of the four steps between neighbouring tiles.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var (
	directionNames  = [...]string{"north", "east", "south", "west"}
	directionDeltas = [...][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
)

func (d Direction) valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.valid() {
		return "unknown"
	}
	return directionNames[d]
}

// Delta returns the row and column offsets of one step.
func (d Direction) Delta() (rowDelta, colDelta int) {
	if !d.valid() {
		return 0, 0
	}
	return directionDeltas[d][0], directionDeltas[d][1]
}

// DirectionBetween returns the direction that steps from one tile to an
// orthogonally adjacent one.
func DirectionBetween(fromRow, fromCol, toRow, toCol int) (Direction, bool) {
	for d := North; d <= West; d++ {
		dr, dc := d.Delta()
		if fromRow+dr == toRow && fromCol+dc == toCol {
			return d, true
		}
	}
	return North, false
}
