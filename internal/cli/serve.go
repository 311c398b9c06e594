package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/hexplanner/internal/api"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shape catalog and layout search over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			srv := &api.Server{
				Catalog:           db,
				Addr:              a.cfg.Server.Addr,
				CORSOrigins:       a.cfg.Server.CORSOrigins,
				MaxNodes:          a.cfg.Planner.MaxNodes,
				MaxAnchors:        a.cfg.Planner.MaxAnchors,
				LayoutRatePerHour: a.cfg.Server.LayoutRatePerHour,
				TrustedProxies:    a.cfg.Server.TrustedProxies,
				Logger:            a.logger,
			}
			if err := srv.Start(); err != nil {
				return err
			}

			select {
			case err := <-srv.Err():
				return fmt.Errorf("serve: %w", err)
			case <-cmd.Context().Done():
			}
			a.logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
