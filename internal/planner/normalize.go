package planner

import (
	"fmt"

	"github.com/talgya/hexplanner/internal/world"
)

// normalizeReference reorders a shape so the anchor comes first at offset
// (0,0). Remaining cells keep their relative order.
func normalizeReference(cells []world.ReferenceCell) ([]world.ReferenceCell, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrMalformedShape)
	}

	anchor := -1
	for i, c := range cells {
		if !c.Anchor {
			continue
		}
		if anchor >= 0 {
			return nil, fmt.Errorf("%w: cells %d and %d are both anchors", ErrMalformedShape, anchor, i)
		}
		anchor = i
	}
	if anchor < 0 {
		return nil, fmt.Errorf("%w: no anchor cell", ErrMalformedShape)
	}

	out := make([]world.ReferenceCell, 0, len(cells))
	out = append(out, world.ReferenceCell{
		Kind:   cells[anchor].Kind,
		Anchor: true,
		Height: cells[anchor].Height,
	})

	used := map[world.HexCoord]int{{}: anchor}
	for i, c := range cells {
		if i == anchor {
			continue
		}
		off := c.Offset()
		if prev, ok := used[off]; ok {
			return nil, fmt.Errorf("%w: cell %d overlaps cell %d at offset %v", ErrMalformedShape, i, prev, off)
		}
		used[off] = i
		out = append(out, world.ReferenceCell{
			Kind:   c.Kind,
			DeltaQ: c.DeltaQ,
			DeltaR: c.DeltaR,
			Height: c.Height,
		})
	}

	for i, c := range out {
		if c.Height < 1 {
			return nil, fmt.Errorf("%w: cell %d has height %d", ErrMalformedShape, i, c.Height)
		}
	}
	return out, nil
}
