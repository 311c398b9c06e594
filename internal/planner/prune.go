package planner

import "github.com/talgya/hexplanner/internal/world"

// prune keeps the anchors and every cell lying at a reference offset from
// some anchor. Incidental cells outside all footprints are dropped.
func (p *HexagonPlanner) prune(g *grid) Solution {
	var anchors []world.HexCoord
	g.each(func(c Cell) {
		if c.Anchor {
			anchors = append(anchors, c.Coord())
		}
	})

	footprint := make(map[world.HexCoord]bool)
	for _, a := range anchors {
		for _, ref := range p.reference {
			footprint[a.Add(ref.Offset())] = true
		}
	}

	out := make(Solution, 0, len(g.order))
	g.each(func(c Cell) {
		if c.Anchor || footprint[c.Coord()] {
			out = append(out, c)
		}
	})
	return out
}
