// Package sequencer implements the ordered reveal of memory spots: only the
// current spot can be triggered, and a reveal is committed only after its
// panel is dismissed.
package sequencer

import (
	"fmt"
	"math/rand"

	"hiro/pkg/engine/world"
)

// Tuning holds the placement and trigger parameters.
type Tuning struct {
	SpotCount     int     `yaml:"spot_count"`
	Bounds        float64 `yaml:"bounds"`
	MinSpacing    float64 `yaml:"min_spacing"`
	MinCenterDist float64 `yaml:"min_center_dist"`
	Attempts      int     `yaml:"attempts"`
	TriggerRadius float64 `yaml:"trigger_radius"`
	PortalRadius  float64 `yaml:"portal_radius"`
}

// DefaultTuning returns the stock level values.
func DefaultTuning() Tuning {
	return Tuning{
		SpotCount:     4,
		Bounds:        24,
		MinSpacing:    10,
		MinCenterDist: 10,
		Attempts:      80,
		TriggerRadius: 1.5,
		PortalRadius:  3.2,
	}
}

// Phase is the sequencer's state.
type Phase int

const (
	PhaseSearching Phase = iota
	PhasePanelOpen
	PhaseAllSeen
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhasePanelOpen:
		return "panel-open"
	case PhaseAllSeen:
		return "all-seen"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Sequencer walks a fixed ordered list of spots.
type Sequencer struct {
	Spots  []world.Zone
	Portal world.Zone

	CurrentTarget  int
	ActivatedCount int
	Phase          Phase
	// Pending is the index of the spot whose panel is open, -1 for none.
	Pending int
	AllSeen bool
}

// New creates a sequencer over the given spots. Spot indices are rewritten
// to match their position.
func New(spots []world.Zone, portal world.Zone) *Sequencer {
	for i := range spots {
		spots[i].Index = i
		spots[i].Activated = false
	}
	return &Sequencer{
		Spots:   spots,
		Portal:  portal,
		Pending: -1,
	}
}

// Reveal is emitted when the current spot is reached. The caller shows the
// spot's panel and later calls Dismiss.
type Reveal struct {
	Index int
	// Last is true when committing this spot will complete the sequence.
	Last bool
}

// Tick checks the actor against the current target. It returns the reveal to
// show, or false when nothing happened. While a panel is open every check is
// suppressed.
func (s *Sequencer) Tick(actor world.Vec3) (Reveal, bool) {
	if s.Phase != PhaseSearching {
		return Reveal{}, false
	}
	idx := world.FirstSatisfied(actor, s.Spots, func(z *world.Zone) bool {
		return !z.Activated && z.Index == s.CurrentTarget
	})
	if idx < 0 {
		return Reveal{}, false
	}
	s.Pending = idx
	s.Phase = PhasePanelOpen
	return Reveal{Index: idx, Last: s.ActivatedCount+1 == len(s.Spots)}, true
}

// Commit is the outcome of dismissing a reveal panel.
type Commit struct {
	Credited bool
	Index    int
	AllSeen  bool
}

// Dismiss commits the pending reveal. It is a no-op outside PhasePanelOpen.
// A lost pending reference drops back to searching without credit.
func (s *Sequencer) Dismiss() Commit {
	if s.Phase != PhasePanelOpen {
		return Commit{}
	}
	idx := s.Pending
	s.Pending = -1
	s.Phase = PhaseSearching
	if idx < 0 || idx >= len(s.Spots) || s.Spots[idx].Activated {
		return Commit{}
	}

	s.Spots[idx].Activated = true
	s.ActivatedCount++
	s.CurrentTarget++
	if s.ActivatedCount == len(s.Spots) {
		s.AllSeen = true
		s.Phase = PhaseAllSeen
	}
	return Commit{Credited: true, Index: idx, AllSeen: s.AllSeen}
}

// PortalReached reports whether the actor stands in the center portal. The
// portal only exists once every spot has been seen.
func (s *Sequencer) PortalReached(actor world.Vec3) bool {
	return s.AllSeen && s.Portal.Contains(actor)
}

// Complete marks every spot seen. Used by the skip key.
func (s *Sequencer) Complete() {
	for i := range s.Spots {
		s.Spots[i].Activated = true
	}
	s.ActivatedCount = len(s.Spots)
	s.CurrentTarget = len(s.Spots)
	s.Pending = -1
	s.AllSeen = true
	s.Phase = PhaseAllSeen
}

// PlaceSpots scatters spots by rejection sampling: each candidate must be at
// least MinCenterDist from the origin and MinSpacing from every accepted spot.
// After Attempts failures a spot falls back to a uniform position.
func PlaceSpots(t Tuning, rng *rand.Rand) []world.Zone {
	used := make([]world.Vec3, 0, t.SpotCount)
	spots := make([]world.Zone, 0, t.SpotCount)

	uniform := func() world.Vec3 {
		return world.V3((rng.Float64()*2-1)*t.Bounds, 0.01, (rng.Float64()*2-1)*t.Bounds)
	}

	for i := 0; i < t.SpotCount; i++ {
		pos, ok := world.Vec3{}, false
		for attempt := 0; attempt < t.Attempts && !ok; attempt++ {
			candidate := uniform()
			if candidate.Len() < t.MinCenterDist {
				continue
			}
			ok = true
			for _, p := range used {
				if p.Dist(candidate) < t.MinSpacing {
					ok = false
					break
				}
			}
			if ok {
				pos = candidate
				used = append(used, candidate)
			}
		}
		if !ok {
			pos = uniform()
		}
		spots = append(spots, world.Zone{
			ID:     fmt.Sprintf("spot-%d", i),
			Index:  i,
			Center: pos,
			Radius: t.TriggerRadius,
			Shape:  world.ShapeCircle,
		})
	}
	return spots
}
