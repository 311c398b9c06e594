package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/hexplanner/internal/render"
)

func (a *app) newShapesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Inspect and manage the shape catalog",
	}
	cmd.AddCommand(a.newShapesListCmd())
	cmd.AddCommand(a.newShapesShowCmd())
	cmd.AddCommand(a.newShapesImportCmd())
	cmd.AddCommand(a.newShapesDeleteCmd())
	return cmd
}

func (a *app) newShapesListCmd() *cobra.Command {
	format := "text"
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog shapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			shapes, err := db.ListShapes()
			if err != nil {
				return err
			}
			if format == "json" {
				return a.writeJSON(shapes)
			}
			_, err = fmt.Fprintln(a.out, render.New(a.out).ShapeTable(shapes))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", format, "output format: text or json")
	return cmd
}

func (a *app) newShapesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Draw one shape's reference pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid shape id %q", args[0])
			}
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			shape, err := db.GetShape(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  kind=%s anchors=%d\n", shape.Name, shape.Kind, shape.Iterations())
			_, err = fmt.Fprintln(a.out, render.New(a.out).Pattern(shape.Pattern))
			return err
		},
	}
}

func (a *app) newShapesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Insert or replace shapes from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.ImportJSON(f)
			if err != nil {
				return err
			}
			a.logger.Info("shapes imported", "file", args[0], "count", n)
			return nil
		},
	}
}

func (a *app) newShapesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a shape from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid shape id %q", args[0])
			}
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteShape(id); err != nil {
				return err
			}
			a.logger.Info("shape deleted", "id", id)
			return nil
		},
	}
}
