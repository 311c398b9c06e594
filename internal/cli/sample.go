package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/hexplanner/internal/render"
	"github.com/talgya/hexplanner/internal/world"
)

func (a *app) newSampleCmd() *cobra.Command {
	cfg := world.DefaultSampleConfig()
	format := "json"

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a random connected shape from noise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if cfg.Radius < 1 {
				return fmt.Errorf("radius must be at least 1, got %d", cfg.Radius)
			}
			cells := world.SampleShape(cfg)
			a.logger.Debug("shape sampled", "seed", cfg.Seed, "cells", len(cells), "kinds", world.KindCounts(cells))

			if format == "json" {
				return a.writeJSON(cells)
			}
			_, err := fmt.Fprintln(a.out, render.New(a.out).Pattern(cells))
			return err
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed")
	cmd.Flags().IntVar(&cfg.Radius, "radius", cfg.Radius, "max distance from the anchor")
	cmd.Flags().IntVar(&cfg.Cells, "cells", cfg.Cells, "non-anchor cells to grow")
	cmd.Flags().StringVar(&format, "format", format, "output format: text or json")
	return cmd
}
