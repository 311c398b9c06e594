package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hexplanner/internal/planner"
	"github.com/talgya/hexplanner/internal/render"
	"github.com/talgya/hexplanner/internal/world"
)

type solveOpts struct {
	id       int64
	file     string
	n        int
	maxNodes int
	format   string
	verify   bool
}

func (a *app) newSolveCmd() *cobra.Command {
	opts := solveOpts{format: "text", maxNodes: -1}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute every distinct layout for a shape",
		Long: `Solve searches all layouts in which a shape's anchors form a chain of
n copies. The shape comes from the catalog (--id) or a JSON file (--file)
holding either a shape object or a bare list of reference cells.

Without -n, a catalog shape uses its own score count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.id == 0) == (opts.file == "") {
				return errors.New("exactly one of --id or --file is required")
			}
			if err := checkFormat(opts.format); err != nil {
				return err
			}

			shape, err := a.loadShape(opts)
			if err != nil {
				return err
			}
			n := shape.Iterations()
			if cmd.Flags().Changed("anchors") {
				n = opts.n
			}
			maxNodes := a.cfg.Planner.MaxNodes
			if opts.maxNodes >= 0 {
				maxNodes = opts.maxNodes
			}

			p, err := planner.New(shape.Pattern, n, planner.Options{MaxNodes: maxNodes, Logger: a.logger})
			if err != nil {
				return err
			}
			sols, st, err := p.Solve(cmd.Context())
			if err != nil {
				return err
			}
			if opts.verify {
				for i, sol := range sols {
					if err := p.Verify(sol); err != nil {
						return fmt.Errorf("layout %d: %w", i+1, err)
					}
				}
			}

			a.logger.Info("search finished",
				"shape", shape.Name,
				"anchors", n,
				"nodes", humanize.Comma(int64(st.Nodes)),
				"raw", st.Raw,
				"solutions", st.Solutions,
				"duration", st.Duration,
			)

			if opts.format == "json" {
				return a.writeJSON(sols)
			}
			return render.New(a.out).Solutions(a.out, sols)
		},
	}

	cmd.Flags().Int64Var(&opts.id, "id", 0, "catalog shape id")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "shape JSON file")
	cmd.Flags().IntVarP(&opts.n, "anchors", "n", 0, "number of anchors in the chain")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "search node cap, 0 = unbounded (default from config)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: text or json")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "re-check every layout before printing")
	return cmd
}

func (a *app) loadShape(opts solveOpts) (*world.Shape, error) {
	if opts.file == "" {
		db, err := a.openCatalog()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.GetShape(opts.id)
	}
	return readShapeFile(opts.file)
}

func readShapeFile(path string) (*world.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var shape world.Shape
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &shape.Pattern)
		shape.Name = path
	} else {
		err = json.Unmarshal(data, &shape)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &shape, nil
}
