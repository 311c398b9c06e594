package planner

import (
	"context"

	"github.com/talgya/hexplanner/internal/world"
)

type search struct {
	p     *HexagonPlanner
	ctx   context.Context
	nodes int
	raw   []Solution
	err   error
}

// dfs extends g one reference cell at a time. index is the reference cell to
// place next; anchors counts the anchors already on g.
func (s *search) dfs(g *grid, index, anchors int) {
	if s.err != nil {
		return
	}
	if anchors == s.p.n {
		s.raw = append(s.raw, s.p.prune(g))
		return
	}
	if anchors > s.p.n {
		return
	}

	s.nodes++
	if limit := s.p.opts.MaxNodes; limit > 0 && s.nodes > limit {
		s.err = ErrSearchLimit
		return
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return
	}

	// Past the last cell of an instance, the next instance starts at its anchor.
	if index >= len(s.p.reference) {
		index = 0
	}
	node := s.p.reference[index]

	for _, at := range s.p.candidates(g, node) {
		if node.Anchor {
			next := g.clone()
			next.place(newCell(at, node))
			if !s.p.validate(at, next) {
				continue
			}
			s.dfs(next, 0, anchors+1)
		} else {
			if occupant, ok := g.get(at); ok && !shareable(occupant, node) {
				continue
			}
			next := g.clone()
			next.place(newCell(at, node))
			s.dfs(next, index+1, anchors)
		}
		if s.err != nil {
			return
		}
	}
}

// candidates lists where node could go next on g.
//
// A new anchor must touch a non-anchor cell already placed, since shape
// instances interlock through their non-anchor cells. A non-anchor cell is
// tried at its offset from every anchor on the grid.
func (p *HexagonPlanner) candidates(g *grid, node world.ReferenceCell) []world.HexCoord {
	var out []world.HexCoord
	if node.Anchor {
		seen := make(map[world.HexCoord]bool)
		g.each(func(c Cell) {
			if c.Anchor {
				return
			}
			for _, n := range c.Coord().Neighbors() {
				if _, occupied := g.get(n); occupied || seen[n] {
					continue
				}
				seen[n] = true
				out = append(out, n)
			}
		})
		return out
	}

	g.each(func(c Cell) {
		if c.Anchor {
			out = append(out, c.Coord().Add(node.Offset()))
		}
	})
	return out
}

// shareable reports whether an occupied hex can double as node.
func shareable(occupant Cell, node world.ReferenceCell) bool {
	return !occupant.Anchor && occupant.Kind == node.Kind && occupant.Height == node.Height
}
