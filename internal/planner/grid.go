package planner

import "github.com/talgya/hexplanner/internal/world"

// Cell is a shape cell placed on the grid.
type Cell struct {
	Q      int        `json:"q"`
	R      int        `json:"r"`
	S      int        `json:"s"`
	Kind   world.Kind `json:"kind"`
	Anchor bool       `json:"animal"`
	Height int        `json:"height"`
}

func newCell(at world.HexCoord, ref world.ReferenceCell) Cell {
	return Cell{
		Q:      at.Q,
		R:      at.R,
		S:      at.S(),
		Kind:   ref.Kind,
		Anchor: ref.Anchor,
		Height: ref.Height,
	}
}

// Coord returns the cell's axial coordinate.
func (c Cell) Coord() world.HexCoord {
	return world.HexCoord{Q: c.Q, R: c.R}
}

// Solution is one complete layout.
type Solution []Cell

// Anchors returns the number of anchor cells in the layout.
func (s Solution) Anchors() int {
	n := 0
	for _, c := range s {
		if c.Anchor {
			n++
		}
	}
	return n
}

// grid is one search branch's placement. Branches never share a grid: every
// placement works on a clone, so returning from a branch needs no undo.
type grid struct {
	cells map[world.HexCoord]Cell
	order []world.HexCoord // insertion order, keeps iteration deterministic
}

func newGrid() *grid {
	return &grid{cells: make(map[world.HexCoord]Cell)}
}

func gridOf(cells []Cell) *grid {
	g := newGrid()
	for _, c := range cells {
		g.place(c)
	}
	return g
}

func (g *grid) clone() *grid {
	out := &grid{
		cells: make(map[world.HexCoord]Cell, len(g.cells)+1),
		order: make([]world.HexCoord, len(g.order), len(g.order)+1),
	}
	for k, v := range g.cells {
		out.cells[k] = v
	}
	copy(out.order, g.order)
	return out
}

func (g *grid) get(at world.HexCoord) (Cell, bool) {
	c, ok := g.cells[at]
	return c, ok
}

func (g *grid) place(c Cell) {
	at := c.Coord()
	if _, ok := g.cells[at]; !ok {
		g.order = append(g.order, at)
	}
	g.cells[at] = c
}

func (g *grid) each(fn func(Cell)) {
	for _, at := range g.order {
		fn(g.cells[at])
	}
}
