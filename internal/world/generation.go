// Shape sampling using layered simplex noise.
// Elevation and moisture fields are sampled over a small hex disk, terrain is
// derived from them, and a connected patch around the origin becomes the shape.
package world

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// SampleConfig holds shape sampling parameters.
type SampleConfig struct {
	Radius      int     // Disk radius the patch may grow within
	Cells       int     // Non-anchor cells to keep
	Seed        int64   // Random seed (0 = random)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
	WaterLvl    float64 // Elevation threshold below which cells are water
}

// DefaultSampleConfig returns a configuration that yields shapes similar in
// size to the hand-made catalog entries.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Radius:      2,
		Cells:       3,
		Seed:        0,
		MountainLvl: 0.68,
		WaterLvl:    0.32,
	}
}

type sample struct {
	coord  HexCoord
	kind   Kind
	height int
	score  float64
}

// SampleShape creates a random reference shape with its anchor at the origin.
// The same non-zero seed always yields the same shape.
func SampleShape(cfg SampleConfig) []ReferenceCell {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if cfg.Radius < 1 {
		cfg.Radius = 1
	}
	// A disk of radius R holds 3R(R+1)+1 hexes, one of which is the anchor.
	if limit := 3 * cfg.Radius * (cfg.Radius + 1); cfg.Cells > limit {
		cfg.Cells = limit
	}

	// Independent layers for elevation and moisture.
	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	samples := make(map[HexCoord]sample)
	for _, c := range Disk(cfg.Radius) {
		// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
		x := float64(c.Q) + float64(c.R)*0.5
		y := float64(c.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 3, 0.35, 0.5)
		moist := octaveNoise(moistNoise, x, y, 2, 0.25, 0.5)

		samples[c] = sample{
			coord:  c,
			kind:   deriveKind(elev, moist, cfg),
			height: deriveHeight(elev),
			score:  elev*0.6 + moist*0.4,
		}
	}

	origin := samples[HexCoord{}]
	cells := []ReferenceCell{{Kind: origin.kind, Anchor: true, Height: origin.height}}

	// Grow a connected patch, always taking the best-scoring frontier hex.
	taken := map[HexCoord]bool{{}: true}
	for len(cells)-1 < cfg.Cells {
		var frontier []sample
		seen := make(map[HexCoord]bool)
		for c := range taken {
			for _, n := range c.Neighbors() {
				s, ok := samples[n]
				if !ok || taken[n] || seen[n] {
					continue
				}
				seen[n] = true
				frontier = append(frontier, s)
			}
		}
		if len(frontier) == 0 {
			break
		}
		sort.Slice(frontier, func(i, j int) bool {
			if frontier[i].score != frontier[j].score {
				return frontier[i].score > frontier[j].score
			}
			if frontier[i].coord.Q != frontier[j].coord.Q {
				return frontier[i].coord.Q < frontier[j].coord.Q
			}
			return frontier[i].coord.R < frontier[j].coord.R
		})
		best := frontier[0]
		taken[best.coord] = true
		cells = append(cells, ReferenceCell{
			Kind:   best.kind,
			DeltaQ: best.coord.Q,
			DeltaR: best.coord.R,
			Height: best.height,
		})
	}

	return cells
}

// deriveKind determines terrain kind from environmental parameters.
func deriveKind(elev, moist float64, cfg SampleConfig) Kind {
	if elev < cfg.WaterLvl {
		return Water
	}
	if elev > cfg.MountainLvl {
		return Mountain
	}
	if moist > 0.55 {
		return Tree
	}
	if moist < 0.3 && elev > 0.5 {
		return Building
	}
	return Field
}

// deriveHeight maps elevation onto the 1–3 height scale.
func deriveHeight(elev float64) int {
	h := 1 + int(elev*3)
	if h > 3 {
		h = 3
	}
	return h
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// KindCounts returns a summary of terrain kind distribution in a shape.
func KindCounts(cells []ReferenceCell) map[Kind]int {
	counts := make(map[Kind]int)
	for _, c := range cells {
		counts[c.Kind]++
	}
	return counts
}
