package world

import (
	"math/rand"
	"testing"
)

type pair struct{ i, j int }

func TestSpatialHashPairsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]Vec3, 60)
	for i := range points {
		points[i] = V3(rng.Float64()*20-10, rng.Float64()*10, rng.Float64()*20-10)
	}
	const cell = 2.4

	h := NewSpatialHash(cell)
	seen := map[pair]int{}
	h.Pairs(points, nil, func(i, j int) {
		seen[pair{i, j}]++
	})

	for p, n := range seen {
		if p.i >= p.j {
			t.Fatalf("pair %v not ordered", p)
		}
		if n != 1 {
			t.Fatalf("pair %v reported %d times", p, n)
		}
	}

	// Every pair closer than one cell must be a candidate.
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Dist(points[j]) < cell {
				if seen[pair{i, j}] == 0 {
					t.Errorf("close pair (%d, %d) missed", i, j)
				}
			}
		}
	}
}

func TestSpatialHashSkipsDead(t *testing.T) {
	points := []Vec3{V3(0, 0, 0), V3(0.1, 0, 0), V3(0.2, 0, 0)}
	h := NewSpatialHash(2.4)
	count := 0
	h.Pairs(points, func(i int) bool { return i != 1 }, func(i, j int) {
		if i == 1 || j == 1 {
			t.Errorf("dead index in pair (%d, %d)", i, j)
		}
		count++
	})
	if count != 1 {
		t.Errorf("pairs = %d, want 1", count)
	}
}
