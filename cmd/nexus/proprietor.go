package main

import (
	"context"
	"fmt"
	"io"

	domainerrors "nexus/internal/domain/errors"

	"github.com/spf13/cobra"
)

// NewProprietorCommand creates the proprietor command group.
func NewProprietorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proprietor",
		Short: "Inspect the proprietor and check its credential",
	}

	cmd.AddCommand(newProprietorShowCommand(rootOpts))
	cmd.AddCommand(newProprietorVerifyCommand(rootOpts))

	return cmd
}

func newProprietorShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the proprietor and its cash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				proprietor, err := app.Proprietors.GetProprietor(ctx)
				if err != nil {
					return err
				}
				if proprietor == nil {
					return domainerrors.ErrProprietorNotFound
				}

				view := newProprietorView(proprietor)

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "Tax ID:\t%s\n", view.TaxID)
					fmt.Fprintf(w, "Name:\t%s\n", view.Name)
					fmt.Fprintf(w, "Login:\t%s\n", view.Login)
					fmt.Fprintf(w, "Cash:\t%s\n", view.Cash)
				})
			})
		},
	}
}

func newProprietorVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var login, secret string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a login and secret against the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				ok, err := app.Proprietors.VerifyLogin(ctx, login, secret)
				if err != nil {
					return err
				}
				if !ok {
					return domainerrors.ErrInvalidCredentials.WithDetails("login " + login)
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(
					map[string]any{"login": login, "valid": true},
					func(w io.Writer) { fmt.Fprintf(w, "credential of %s is valid\n", login) },
				)
			})
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "proprietor login")
	cmd.Flags().StringVar(&secret, "secret", "", "proprietor secret")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
