package world

// Kind is a terrain category. The planner compares kinds as opaque keys,
// so catalogs may use values outside the named constants.
type Kind string

// Terrain kinds used by the default catalog.
const (
	Mountain Kind = "Mountain"
	Field    Kind = "Field"
	Tree     Kind = "Tree"
	Water    Kind = "Water"
	Building Kind = "Building"
)

// Kinds lists the named terrain kinds in display order.
var Kinds = []Kind{Mountain, Field, Tree, Water, Building}

// Known reports whether k is one of the named terrain kinds.
func (k Kind) Known() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// ReferenceCell is one cell of a shape definition. Offsets are relative to
// the anchor cell; the anchor's own offsets are ignored.
type ReferenceCell struct {
	Kind   Kind `json:"kind"`
	Anchor bool `json:"animal,omitempty"`
	DeltaQ int  `json:"delta_q,omitempty"`
	DeltaR int  `json:"delta_r,omitempty"`
	Height int  `json:"height"`
}

// Offset returns the cell's position relative to the anchor.
func (c ReferenceCell) Offset() HexCoord {
	return HexCoord{Q: c.DeltaQ, R: c.DeltaR}
}

// Shape is a named catalog entry. Each score is one animal to place, so the
// number of scores is the anchor count a layout must reach.
type Shape struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	EnName  string          `json:"enName,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Scores  []int           `json:"scores"`
	Pattern []ReferenceCell `json:"pattern"`
}

// Iterations returns the anchor count a layout of this shape targets.
func (s *Shape) Iterations() int {
	return len(s.Scores)
}
