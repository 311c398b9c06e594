// Package persistence provides the SQLite-backed shape catalog.
package persistence

import (
	"bytes"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexplanner/internal/world"
)

// ErrShapeNotFound is returned when no shape has the requested ID.
var ErrShapeNotFound = errors.New("shape not found")

//go:embed shapes.json
var defaultShapes []byte

// DB wraps a SQLite connection holding the shape catalog.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shapes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		en_name TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL DEFAULT '',
		scores_json TEXT NOT NULL,
		pattern_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shapes_name ON shapes(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type shapeRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	EnName      string `db:"en_name"`
	Kind        string `db:"kind"`
	ScoresJSON  string `db:"scores_json"`
	PatternJSON string `db:"pattern_json"`
	CreatedAt   int64  `db:"created_at"`
}

func (r shapeRow) shape() (*world.Shape, error) {
	s := &world.Shape{ID: r.ID, Name: r.Name, EnName: r.EnName, Kind: r.Kind}
	if err := json.Unmarshal([]byte(r.ScoresJSON), &s.Scores); err != nil {
		return nil, fmt.Errorf("shape %d scores: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.PatternJSON), &s.Pattern); err != nil {
		return nil, fmt.Errorf("shape %d pattern: %w", r.ID, err)
	}
	return s, nil
}

// ImportShapes writes shapes to the catalog, replacing any with the same ID.
func (db *DB) ImportShapes(shapes []world.Shape) error {
	for i := range shapes {
		if err := checkShape(&shapes[i]); err != nil {
			return err
		}
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO shapes
		(id, name, en_name, kind, scores_json, pattern_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, s := range shapes {
		scores := s.Scores
		if scores == nil {
			scores = []int{}
		}
		scoresJSON, err := json.Marshal(scores)
		if err != nil {
			return fmt.Errorf("shape %d scores: %w", s.ID, err)
		}
		patternJSON, err := json.Marshal(s.Pattern)
		if err != nil {
			return fmt.Errorf("shape %d pattern: %w", s.ID, err)
		}

		_, err = stmt.Exec(s.ID, s.Name, s.EnName, s.Kind, string(scoresJSON), string(patternJSON), now)
		if err != nil {
			return fmt.Errorf("insert shape %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// ImportJSON reads a JSON array of shapes and writes them to the catalog.
// It returns the number of shapes imported.
func (db *DB) ImportJSON(r io.Reader) (int, error) {
	var shapes []world.Shape
	if err := json.NewDecoder(r).Decode(&shapes); err != nil {
		return 0, fmt.Errorf("decode shapes: %w", err)
	}
	if err := db.ImportShapes(shapes); err != nil {
		return 0, err
	}
	return len(shapes), nil
}

// SeedDefaults loads the built-in catalog when the catalog is empty.
func (db *DB) SeedDefaults() error {
	n, err := db.ShapeCount()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	imported, err := db.ImportJSON(bytes.NewReader(defaultShapes))
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	slog.Info("shape catalog seeded", "shapes", imported)
	return nil
}

// ShapeCount returns the number of shapes in the catalog.
func (db *DB) ShapeCount() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM shapes")
	return n, err
}

// ListShapes returns every shape ordered by ID.
func (db *DB) ListShapes() ([]world.Shape, error) {
	var rows []shapeRow
	if err := db.conn.Select(&rows, "SELECT * FROM shapes ORDER BY id"); err != nil {
		return nil, err
	}

	shapes := make([]world.Shape, 0, len(rows))
	for _, r := range rows {
		s, err := r.shape()
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, *s)
	}
	return shapes, nil
}

// GetShape returns the shape with the given ID.
func (db *DB) GetShape(id int64) (*world.Shape, error) {
	var row shapeRow
	err := db.conn.Get(&row, "SELECT * FROM shapes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrShapeNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.shape()
}

// DeleteShape removes a shape from the catalog.
func (db *DB) DeleteShape(id int64) error {
	res, err := db.conn.Exec("DELETE FROM shapes WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrShapeNotFound, id)
	}
	return nil
}

func checkShape(s *world.Shape) error {
	if s.ID <= 0 {
		return fmt.Errorf("shape %q: id must be positive", s.Name)
	}
	if s.Name == "" {
		return fmt.Errorf("shape %d: missing name", s.ID)
	}
	if len(s.Pattern) == 0 {
		return fmt.Errorf("shape %d: empty pattern", s.ID)
	}
	return nil
}
