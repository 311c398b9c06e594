// Package world provides the hex grid, terrain kinds, and shape definitions.
// Uses axial coordinates (q, r) for the hex grid.
package world

import "fmt"

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns the coordinate offset by d.
func (h HexCoord) Add(d HexCoord) HexCoord {
	return HexCoord{Q: h.Q + d.Q, R: h.R + d.R}
}

// Sub returns the offset that takes o to h.
func (h HexCoord) Sub(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q - o.Q, R: h.R - o.R}
}

func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Rotations is the number of distinct 60° rotations on a hex grid.
const Rotations = 6

// Rotate turns an offset about the origin by k steps of 60°.
// k is taken modulo 6, so negative steps rotate the other way.
func Rotate(d HexCoord, k int) HexCoord {
	q, r := d.Q, d.R
	switch ((k % Rotations) + Rotations) % Rotations {
	case 1:
		return HexCoord{Q: -r, R: q + r}
	case 2:
		return HexCoord{Q: -q - r, R: q}
	case 3:
		return HexCoord{Q: -q, R: -r}
	case 4:
		return HexCoord{Q: r, R: -q - r}
	case 5:
		return HexCoord{Q: q + r, R: -q}
	default:
		return d
	}
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

// Disk returns every coordinate within radius of the origin, in q-major order.
// A disk of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func Disk(radius int) []HexCoord {
	var out []HexCoord
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := HexCoord{Q: q, R: r}
			if Distance(c, HexCoord{}) <= radius {
				out = append(out, c)
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
