package planner

import (
	"fmt"

	"github.com/talgya/hexplanner/internal/world"
)

// validate reports whether the anchor at `at` is surrounded by some full
// rotation of the shape. Any matching rotation will do.
func (p *HexagonPlanner) validate(at world.HexCoord, g *grid) bool {
	for _, pattern := range p.patterns {
		if p.matches(at, pattern, g) {
			return true
		}
	}
	return false
}

func (p *HexagonPlanner) matches(at world.HexCoord, pattern RotationPattern, g *grid) bool {
	for i, d := range pattern {
		want := p.reference[i+1]
		got, ok := g.get(at.Add(d))
		if !ok || got.Kind != want.Kind || got.Height != want.Height {
			return false
		}
	}
	return true
}

// Verify checks a finished layout: it must hold the planner's anchor count
// and every anchor must pass structural validation against the layout's cells.
func (p *HexagonPlanner) Verify(sol Solution) error {
	if got := sol.Anchors(); got != p.n {
		return fmt.Errorf("layout has %d anchors, want %d", got, p.n)
	}
	g := gridOf(sol)
	for _, c := range sol {
		if c.Anchor && !p.validate(c.Coord(), g) {
			return fmt.Errorf("anchor at %v matches no rotation of the shape", c.Coord())
		}
	}
	return nil
}
