package main

import (
	"context"
	"fmt"
	"io"

	"nexus/internal/errors"
	"nexus/internal/infra/persistence/database"

	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create or wipe the store's tables",
	}

	cmd.AddCommand(newSchemaInitCommand(rootOpts))
	cmd.AddCommand(newSchemaResetCommand(rootOpts))

	return cmd
}

func newSchemaInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create every missing table (existing tables are left untouched)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				if err := database.EnsureSchema(ctx, app.DB); err != nil {
					return errors.Wrap(err, "failed to initialize schema")
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(
					map[string]any{"tables": database.Tables},
					func(w io.Writer) { fmt.Fprintf(w, "schema ready (%d tables)\n", len(database.Tables)) },
				)
			})
		},
	}
}

func newSchemaResetCommand(rootOpts *RootOptions) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every row of every table and restart identifiers (irreversible)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("reset deletes all data; pass --confirm to proceed")
			}

			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				if err := app.Provisioning.Reset(ctx); err != nil {
					return err
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(
					map[string]any{"reset": true},
					func(w io.Writer) { fmt.Fprintln(w, "store reset") },
				)
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the irreversible reset")

	return cmd
}
