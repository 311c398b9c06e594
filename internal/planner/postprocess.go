package planner

import (
	"sort"
	"strconv"
	"strings"
)

// postProcess normalizes every layout, drops repeats, and orders the rest by
// cell count. The first occurrence of a layout wins.
func postProcess(raw []Solution) []Solution {
	seen := make(map[string]bool, len(raw))
	out := make([]Solution, 0, len(raw))
	for _, sol := range raw {
		n := Normalize(sol)
		k := key(n)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) < len(out[j])
	})
	return out
}

// Normalize translates a layout so its smallest q and smallest r are zero,
// then sorts cells by (q, r, s). Normalizing twice changes nothing.
func Normalize(sol Solution) Solution {
	out := make(Solution, len(sol))
	if len(sol) == 0 {
		return out
	}

	minQ, minR := sol[0].Q, sol[0].R
	for _, c := range sol[1:] {
		minQ = min(minQ, c.Q)
		minR = min(minR, c.R)
	}

	for i, c := range sol {
		c.Q -= minQ
		c.R -= minR
		c.S = -c.Q - c.R
		out[i] = c
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		if a.R != b.R {
			return a.R < b.R
		}
		return a.S < b.S
	})
	return out
}

// key encodes a normalized layout exactly, field by field.
func key(sol Solution) string {
	var b strings.Builder
	for _, c := range sol {
		b.WriteString(strconv.Itoa(c.Q))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.R))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.S))
		b.WriteByte(',')
		b.WriteString(strconv.Quote(string(c.Kind)))
		b.WriteByte(',')
		b.WriteString(strconv.FormatBool(c.Anchor))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Height))
		b.WriteByte(';')
	}
	return b.String()
}
