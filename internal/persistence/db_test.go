package persistence

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/hexplanner/internal/world"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeedDefaults(t *testing.T) {
	db := openTemp(t)

	if err := db.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	n, err := db.ShapeCount()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("catalog empty after seeding")
	}

	// A second seed must not touch a populated catalog.
	if err := db.DeleteShape(1); err != nil {
		t.Fatal(err)
	}
	if err := db.SeedDefaults(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetShape(1); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("shape 1 came back after reseed: %v", err)
	}
}

func TestDefaultShapesHaveOneAnchor(t *testing.T) {
	db := openTemp(t)
	if err := db.SeedDefaults(); err != nil {
		t.Fatal(err)
	}
	shapes, err := db.ListShapes()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range shapes {
		anchors := 0
		for _, c := range s.Pattern {
			if c.Anchor {
				anchors++
			}
		}
		if anchors != 1 {
			t.Errorf("shape %d (%s) has %d anchors", s.ID, s.EnName, anchors)
		}
		if s.Iterations() < 1 {
			t.Errorf("shape %d has no scores", s.ID)
		}
	}
}

func TestImportAndGet(t *testing.T) {
	db := openTemp(t)

	in := `[{"id": 7, "name": "Owl", "scores": [1, 2, 3],
		"pattern": [{"kind": "Tree", "animal": true, "height": 2},
		            {"kind": "Field", "delta_q": 0, "delta_r": 1, "height": 1}]}]`
	n, err := db.ImportJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d, want 1", n)
	}

	s, err := db.GetShape(7)
	if err != nil {
		t.Fatalf("GetShape: %v", err)
	}
	if s.Name != "Owl" || s.Iterations() != 3 || len(s.Pattern) != 2 {
		t.Fatalf("unexpected shape: %+v", s)
	}
	if !s.Pattern[0].Anchor || s.Pattern[1].DeltaR != 1 || s.Pattern[1].Kind != world.Field {
		t.Fatalf("pattern not round-tripped: %+v", s.Pattern)
	}
}

func TestImportReplaces(t *testing.T) {
	db := openTemp(t)
	shape := world.Shape{
		ID: 3, Name: "Frog", Scores: []int{1},
		Pattern: []world.ReferenceCell{{Kind: world.Water, Anchor: true, Height: 1}},
	}
	if err := db.ImportShapes([]world.Shape{shape}); err != nil {
		t.Fatal(err)
	}
	shape.Scores = []int{1, 2}
	if err := db.ImportShapes([]world.Shape{shape}); err != nil {
		t.Fatal(err)
	}

	shapes, err := db.ListShapes()
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes) != 1 || shapes[0].Iterations() != 2 {
		t.Fatalf("unexpected catalog: %+v", shapes)
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	db := openTemp(t)
	cases := []world.Shape{
		{ID: 0, Name: "x", Pattern: []world.ReferenceCell{{Kind: world.Field, Anchor: true, Height: 1}}},
		{ID: 1, Pattern: []world.ReferenceCell{{Kind: world.Field, Anchor: true, Height: 1}}},
		{ID: 2, Name: "empty"},
	}
	for _, c := range cases {
		if err := db.ImportShapes([]world.Shape{c}); err == nil {
			t.Errorf("expected error importing %+v", c)
		}
	}
	if n, _ := db.ShapeCount(); n != 0 {
		t.Fatalf("invalid import left %d rows", n)
	}
}

func TestGetShapeNotFound(t *testing.T) {
	db := openTemp(t)
	if _, err := db.GetShape(99); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("err = %v, want ErrShapeNotFound", err)
	}
	if err := db.DeleteShape(99); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("delete err = %v, want ErrShapeNotFound", err)
	}
}

func TestDeleteShape(t *testing.T) {
	db := openTemp(t)
	err := db.ImportShapes([]world.Shape{{
		ID: 3, Name: "Mole",
		Pattern: []world.ReferenceCell{{Kind: world.Field, Anchor: true, Height: 1}},
	}})
	if err != nil {
		t.Fatalf("ImportShapes: %v", err)
	}

	s, err := db.GetShape(3)
	if err != nil {
		t.Fatalf("GetShape: %v", err)
	}
	if s.Scores == nil || len(s.Scores) != 0 {
		t.Fatalf("nil scores should be stored as an empty list, got %#v", s.Scores)
	}

	if err := db.DeleteShape(3); err != nil {
		t.Fatalf("DeleteShape: %v", err)
	}
	if _, err := db.GetShape(3); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("err = %v after delete, want ErrShapeNotFound", err)
	}
	if err := db.DeleteShape(3); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("second delete err = %v, want ErrShapeNotFound", err)
	}
}
