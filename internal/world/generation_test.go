package world

import (
	"reflect"
	"testing"
)

func TestSampleShapeDeterministic(t *testing.T) {
	cfg := DefaultSampleConfig()
	cfg.Seed = 42

	a := SampleShape(cfg)
	b := SampleShape(cfg)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different shapes:\n%v\n%v", a, b)
	}
}

func TestSampleShapeStructure(t *testing.T) {
	cfg := DefaultSampleConfig()
	cfg.Seed = 7
	cfg.Cells = 4

	cells := SampleShape(cfg)
	if len(cells) != cfg.Cells+1 {
		t.Fatalf("got %d cells, want %d", len(cells), cfg.Cells+1)
	}
	if !cells[0].Anchor || cells[0].Offset() != (HexCoord{}) {
		t.Fatalf("first cell should be the anchor at the origin, got %+v", cells[0])
	}

	placed := map[HexCoord]bool{{}: true}
	for _, c := range cells[1:] {
		if c.Anchor {
			t.Fatalf("extra anchor: %+v", c)
		}
		if c.Height < 1 || c.Height > 3 {
			t.Errorf("height %d out of range", c.Height)
		}
		if !c.Kind.Known() {
			t.Errorf("unknown kind %q", c.Kind)
		}
		if Distance(c.Offset(), HexCoord{}) > cfg.Radius {
			t.Errorf("cell %v outside radius %d", c.Offset(), cfg.Radius)
		}
		// Each cell is added next to one already in the patch.
		adjacent := false
		for _, n := range c.Offset().Neighbors() {
			if placed[n] {
				adjacent = true
				break
			}
		}
		if !adjacent {
			t.Errorf("cell %v is not connected to the patch", c.Offset())
		}
		placed[c.Offset()] = true
	}
}

func TestSampleShapeClampsCells(t *testing.T) {
	cfg := DefaultSampleConfig()
	cfg.Seed = 3
	cfg.Radius = 1
	cfg.Cells = 50

	if got := len(SampleShape(cfg)); got != 7 {
		t.Fatalf("radius 1 shape has %d cells, want 7", got)
	}
}

func TestKindCounts(t *testing.T) {
	counts := KindCounts([]ReferenceCell{
		{Kind: Field, Anchor: true, Height: 1},
		{Kind: Tree, DeltaQ: 1, Height: 1},
		{Kind: Tree, DeltaR: 1, Height: 2},
	})
	if counts[Tree] != 2 || counts[Field] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
