package world

import "math"

type cellKey struct {
	x, y, z int
}

// SpatialHash buckets indexed points into a uniform 3D grid so neighbour
// queries only look at the 27 surrounding cells.
type SpatialHash struct {
	size    float64
	buckets map[cellKey][]int
}

// NewSpatialHash creates a hash with the given cell size.
func NewSpatialHash(cellSize float64) *SpatialHash {
	return &SpatialHash{
		size:    cellSize,
		buckets: make(map[cellKey][]int),
	}
}

func (h *SpatialHash) key(p Vec3) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / h.size)),
		y: int(math.Floor(p.Y / h.size)),
		z: int(math.Floor(p.Z / h.size)),
	}
}

// Reset empties every bucket but keeps the allocated slices.
func (h *SpatialHash) Reset() {
	for k, v := range h.buckets {
		h.buckets[k] = v[:0]
	}
}

// Insert adds index i at point p.
func (h *SpatialHash) Insert(i int, p Vec3) {
	k := h.key(p)
	h.buckets[k] = append(h.buckets[k], i)
}

// Neighbors appends to dst every index stored in p's cell and the 26 cells
// around it, and returns the extended slice.
func (h *SpatialHash) Neighbors(dst []int, p Vec3) []int {
	k := h.key(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				dst = append(dst, h.buckets[cellKey{k.x + dx, k.y + dy, k.z + dz}]...)
			}
		}
	}
	return dst
}

// Pairs calls fn once for every unordered pair (i, j), i < j, of indices that
// share a neighbourhood. Only indices accepted by live are hashed.
func (h *SpatialHash) Pairs(points []Vec3, live func(i int) bool, fn func(i, j int)) {
	h.Reset()
	for i, p := range points {
		if live != nil && !live(i) {
			continue
		}
		h.Insert(i, p)
	}

	var scratch []int
	for i, p := range points {
		if live != nil && !live(i) {
			continue
		}
		scratch = h.Neighbors(scratch[:0], p)
		for _, j := range scratch {
			if j <= i {
				continue
			}
			fn(i, j)
		}
	}
}
