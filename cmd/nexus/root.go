package main

import (
	"context"
	"io"
	"slices"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"

	"github.com/spf13/cobra"
)

// Exit codes of the nexus command.
const (
	exitSuccess      = 0
	exitDomainError  = 1 // the store refused the operation (not found, insufficient stock, ...)
	exitCommandError = 2 // bad usage, configuration or storage failure
)

const (
	formatText = "text"
	formatJSON = "json"
)

var validFormats = []string{formatText, formatJSON}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string
}

// NewRootCommand creates the root command of the nexus operator CLI.
func NewRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "nexus",
		Short: "Back-office for clients, products, sales and the proprietor's cash",
		Long: `nexus manages the back-office store of a small business: its clients, its single
proprietor, the products on sale and every recorded sale. Each sale updates stock and
recomputes the proprietor's cash in one transaction.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return errors.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatText, "output format (json|text)")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewProvisionCommand(opts))
	cmd.AddCommand(NewProprietorCommand(opts))
	cmd.AddCommand(NewClientCommand(opts))
	cmd.AddCommand(NewProductCommand(opts))
	cmd.AddCommand(NewSaleCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd, opts
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd, opts := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitSuccess
	}

	out := &printer{format: opts.Format, out: stdout, errOut: stderr}
	out.failure(err)

	var appErr domainerrors.AppError
	var storageErr *domainerrors.StorageFailureError
	if errors.As(err, &appErr) && !errors.As(err, &storageErr) {
		return exitDomainError
	}

	return exitCommandError
}

// runWithApplication starts the application, runs fn inside an operation-scoped
// context and stops the application again.
func runWithApplication(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, app *application) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, stop, err := startApplication(ctx, opts)
	if err != nil {
		return err
	}
	defer stop()

	return fn(logs.WithOperation(ctx, app.Logger), app)
}
