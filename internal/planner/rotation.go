package planner

import "github.com/talgya/hexplanner/internal/world"

// RotationPattern holds the non-anchor offsets of a shape turned by one
// multiple of 60°. Entry i belongs to normalized reference cell i+1.
type RotationPattern []world.HexCoord

func rotationPatterns(ref []world.ReferenceCell) [world.Rotations]RotationPattern {
	var out [world.Rotations]RotationPattern
	for k := range out {
		pattern := make(RotationPattern, 0, len(ref)-1)
		for _, c := range ref[1:] {
			pattern = append(pattern, world.Rotate(c.Offset(), k))
		}
		out[k] = pattern
	}
	return out
}
