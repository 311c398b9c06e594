package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/talgya/hexplanner/internal/world"
)

func TestNormalizeReferenceMovesAnchorFirst(t *testing.T) {
	in := []world.ReferenceCell{
		{Kind: world.Tree, DeltaQ: 1, Height: 1},
		{Kind: world.Field, Anchor: true, DeltaQ: 9, DeltaR: 9, Height: 2},
		{Kind: world.Water, DeltaR: -1, Height: 1},
	}
	got, err := normalizeReference(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []world.ReferenceCell{
		{Kind: world.Field, Anchor: true, Height: 2},
		{Kind: world.Tree, DeltaQ: 1, Height: 1},
		{Kind: world.Water, DeltaR: -1, Height: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeReferenceRejects(t *testing.T) {
	cases := map[string][]world.ReferenceCell{
		"offset on anchor": {
			{Kind: world.Field, Anchor: true, Height: 1},
			{Kind: world.Tree, Height: 1},
		},
		"overlapping cells": {
			{Kind: world.Field, Anchor: true, Height: 1},
			{Kind: world.Tree, DeltaQ: 1, Height: 1},
			{Kind: world.Water, DeltaQ: 1, Height: 1},
		},
		"zero height": {
			{Kind: world.Field, Anchor: true, Height: 1},
			{Kind: world.Tree, DeltaQ: 1},
		},
	}
	for name, cells := range cases {
		if _, err := normalizeReference(cells); !errors.Is(err, ErrMalformedShape) {
			t.Errorf("%s: err = %v, want ErrMalformedShape", name, err)
		}
	}
}

func TestRotationPatternsParallelReference(t *testing.T) {
	ref, err := normalizeReference([]world.ReferenceCell{
		{Kind: world.Field, Anchor: true, Height: 1},
		{Kind: world.Tree, DeltaQ: 1, Height: 1},
		{Kind: world.Water, DeltaQ: -1, DeltaR: 2, Height: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	patterns := rotationPatterns(ref)
	if !reflect.DeepEqual(patterns[0], RotationPattern{{Q: 1, R: 0}, {Q: -1, R: 2}}) {
		t.Fatalf("identity rotation = %v", patterns[0])
	}
	// R1(q,r) = (-r, q+r)
	if !reflect.DeepEqual(patterns[1], RotationPattern{{Q: 0, R: 1}, {Q: -2, R: 1}}) {
		t.Fatalf("first rotation = %v", patterns[1])
	}
	// R3 is a half turn.
	if !reflect.DeepEqual(patterns[3], RotationPattern{{Q: -1, R: 0}, {Q: 1, R: -2}}) {
		t.Fatalf("half turn = %v", patterns[3])
	}
	for k, p := range patterns {
		if len(p) != len(ref)-1 {
			t.Fatalf("pattern %d has %d offsets, want %d", k, len(p), len(ref)-1)
		}
	}
}

func TestRotationPatternsMapNeighborRing(t *testing.T) {
	ref := []world.ReferenceCell{{Kind: world.Field, Anchor: true, Height: 1}}
	for _, d := range world.HexNeighborDirections {
		ref = append(ref, world.ReferenceCell{Kind: world.Tree, DeltaQ: d.Q, DeltaR: d.R, Height: 1})
	}
	for k, p := range rotationPatterns(ref) {
		seen := make(map[world.HexCoord]bool)
		for _, d := range p {
			seen[d] = true
		}
		for _, d := range world.HexNeighborDirections {
			if !seen[d] {
				t.Fatalf("pattern %d misses neighbor %v", k, d)
			}
		}
	}
}

func TestPostProcessDeduplicates(t *testing.T) {
	a := Solution{
		{Q: 5, R: 5, S: -10, Kind: world.Field, Anchor: true, Height: 1},
		{Q: 6, R: 5, S: -11, Kind: world.Tree, Height: 1},
	}
	// Same layout shifted and listed in another order.
	b := Solution{
		{Q: -1, R: 2, S: -1, Kind: world.Tree, Height: 1},
		{Q: -2, R: 2, S: 0, Kind: world.Field, Anchor: true, Height: 1},
	}
	out := postProcess([]Solution{a, b})
	if len(out) != 1 {
		t.Fatalf("got %d solutions, want 1", len(out))
	}
}

func TestPostProcessSortsByCellCount(t *testing.T) {
	big := Solution{
		{Q: 0, R: 0, Kind: world.Field, Anchor: true, Height: 1},
		{Q: 1, R: 0, S: -1, Kind: world.Tree, Height: 1},
		{Q: 2, R: 0, S: -2, Kind: world.Tree, Height: 1},
	}
	small := Solution{
		{Q: 0, R: 0, Kind: world.Field, Anchor: true, Height: 1},
	}
	out := postProcess([]Solution{big, small})
	if len(out) != 2 || len(out[0]) != 1 || len(out[1]) != 3 {
		t.Fatalf("unexpected order: %v", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	sol := Solution{
		{Q: 3, R: -2, S: -1, Kind: world.Tree, Height: 1},
		{Q: 1, R: 4, S: -5, Kind: world.Field, Anchor: true, Height: 1},
		{Q: 1, R: -1, S: 0, Kind: world.Water, Height: 2},
	}
	once := Normalize(sol)
	if !reflect.DeepEqual(Normalize(once), once) {
		t.Fatalf("normalize not idempotent: %v", once)
	}
	if once[0].Q != 0 || once[0].R != 1 || once[0].Kind != world.Water {
		t.Fatalf("first cell = %+v, want Water at q=0 r=1", once[0])
	}
}

func TestPruneDropsIncidentalCells(t *testing.T) {
	p, err := New(fieldTree, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}
	g := p.seed()
	g.place(Cell{Q: 4, R: 4, S: -8, Kind: world.Water, Height: 1})

	got := p.prune(g)
	if len(got) != 2 {
		t.Fatalf("pruned layout has %d cells, want 2: %v", len(got), got)
	}
	for _, c := range got {
		if c.Kind == world.Water {
			t.Fatalf("incidental cell kept: %+v", c)
		}
	}
}

func TestCandidatesForAnchorSkipOccupied(t *testing.T) {
	p, err := New(fieldTree, 2, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := p.candidates(p.seed(), p.reference[0])
	want := []world.HexCoord{{Q: 2, R: 0}, {Q: 2, R: -1}, {Q: 1, R: -1}, {Q: 0, R: 1}, {Q: 1, R: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}
