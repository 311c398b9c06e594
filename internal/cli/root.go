// Package cli implements the hexplanner command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/hexplanner/internal/config"
	"github.com/talgya/hexplanner/internal/logging"
	"github.com/talgya/hexplanner/internal/persistence"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the hexplanner CLI against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Results go to out, logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "hexplanner",
		Short:         "Search hex-grid layouts that chain a shape around shared anchors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newSolveCmd())
	root.AddCommand(a.newShapesCmd())
	root.AddCommand(a.newSampleCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logging.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = logging.New(a.errOut, level, cfg.Log.Format)
	slog.SetDefault(a.logger)
	return nil
}

// openCatalog opens the configured shape database, seeding it on first use.
func (a *app) openCatalog() (*persistence.DB, error) {
	path := a.cfg.Database.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.SeedDefaults(); err != nil {
		db.Close()
		return nil, err
	}
	a.logger.Debug("shape catalog opened", "path", path)
	return db, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q (want text or json)", format)
}
