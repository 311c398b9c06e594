// Package planner enumerates layouts of a hex shape. A layout holds N copies
// of the shape's anchor, each anchor surrounded by some rotation of the
// shape's other cells. Copies may share non-anchor cells.
//
// The search is exponential in N and shape size. Callers bound its cost by
// keeping both small, or through Options.MaxNodes.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexplanner/internal/world"
)

// Options tunes a planner. The zero value searches without limits and logs
// to slog.Default().
type Options struct {
	MaxNodes int // 0 = unbounded
	Logger   *slog.Logger
}

// Stats captures the cost of one search.
type Stats struct {
	Nodes     int           // search nodes expanded
	Raw       int           // layouts found before deduplication
	Solutions int           // layouts returned
	Duration  time.Duration // wall time of the search
}

// HexagonPlanner holds a normalized shape and its rotations. It is immutable
// after New, so one planner may serve several Solve calls.
type HexagonPlanner struct {
	reference []world.ReferenceCell
	patterns  [world.Rotations]RotationPattern
	n         int
	opts      Options
}

// New normalizes the shape and precomputes its rotations.
// n is the number of anchors every layout must hold.
func New(cells []world.ReferenceCell, n int, opts Options) (*HexagonPlanner, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	ref, err := normalizeReference(cells)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &HexagonPlanner{
		reference: ref,
		patterns:  rotationPatterns(ref),
		n:         n,
		opts:      opts,
	}, nil
}

// Reference returns a copy of the normalized shape, anchor first.
func (p *HexagonPlanner) Reference() []world.ReferenceCell {
	return append([]world.ReferenceCell(nil), p.reference...)
}

// Patterns returns a copy of the six rotations of the shape's non-anchor
// offsets, parallel to Reference()[1:].
func (p *HexagonPlanner) Patterns() [world.Rotations]RotationPattern {
	var out [world.Rotations]RotationPattern
	for k, pat := range p.patterns {
		out[k] = append(RotationPattern(nil), pat...)
	}
	return out
}

// Solve runs the search and returns every distinct layout, smallest first.
// An empty result is not an error.
func (p *HexagonPlanner) Solve(ctx context.Context) ([]Solution, Stats, error) {
	start := time.Now()
	s := &search{p: p, ctx: ctx}

	s.dfs(p.seed(), 1, 1)

	stats := Stats{Nodes: s.nodes, Raw: len(s.raw), Duration: time.Since(start)}
	if s.err != nil {
		p.opts.Logger.Warn("layout search aborted",
			"anchors", p.n,
			"nodes", humanize.Comma(int64(stats.Nodes)),
			"error", s.err,
		)
		return nil, stats, fmt.Errorf("solve: %w", s.err)
	}

	out := postProcess(s.raw)
	stats.Solutions = len(out)
	stats.Duration = time.Since(start)

	p.opts.Logger.Debug("layout search finished",
		"anchors", p.n,
		"cells", len(p.reference),
		"nodes", humanize.Comma(int64(stats.Nodes)),
		"raw", stats.Raw,
		"solutions", stats.Solutions,
		"duration", stats.Duration,
	)
	return out, stats, nil
}

// seed places one full copy of the shape with its anchor at the origin.
func (p *HexagonPlanner) seed() *grid {
	g := newGrid()
	for _, ref := range p.reference {
		g.place(newCell(ref.Offset(), ref))
	}
	return g
}
