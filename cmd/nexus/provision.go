package main

import (
	"context"
	"fmt"
	"io"

	"nexus/internal/errors"
	"nexus/internal/usecase"

	"github.com/spf13/cobra"
)

// NewProvisionCommand creates the provision command, which wipes the store and
// registers its proprietor in a single transaction.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		person  personFlags
		login   string
		secret  string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Reset the store and register its proprietor (irreversible)",
		Example: `  nexus provision --tax-id 12345678900 --name "Ana" --login ana --secret s3cret \
    --city Recife --confirm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("provision deletes all data; pass --confirm to proceed")
			}

			input := &usecase.ProprietorInput{
				TaxID:   person.taxID,
				Name:    person.name,
				Email:   person.email,
				Login:   login,
				Secret:  secret,
				Address: person.address,
			}

			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				proprietor, err := app.Provisioning.Provision(ctx, input)
				if err != nil {
					return err
				}

				view := newProprietorView(proprietor)

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "provisioned proprietor %s (%s), login %s\n", view.Name, view.TaxID, view.Login)
				})
			})
		},
	}

	person.register(cmd.Flags())
	cmd.Flags().StringVar(&login, "login", "", "proprietor login")
	cmd.Flags().StringVar(&secret, "secret", "", "proprietor secret")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the irreversible reset")

	return cmd
}
