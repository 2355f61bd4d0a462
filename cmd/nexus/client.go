package main

import (
	"context"
	"fmt"
	"io"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/usecase"

	"github.com/spf13/cobra"
)

// NewClientCommand creates the client command group.
func NewClientCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(newClientListCommand(rootOpts))
	cmd.AddCommand(newClientAddCommand(rootOpts))
	cmd.AddCommand(newClientShowCommand(rootOpts))
	cmd.AddCommand(newClientDeleteCommand(rootOpts))

	return cmd
}

func newClientListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				clients, err := app.Clients.ListClients(ctx)
				if err != nil {
					return err
				}

				views := make([]clientView, 0, len(clients))
				for _, client := range clients {
					views = append(views, newClientView(client))
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(views, func(w io.Writer) {
					fmt.Fprintln(w, "TAX ID\tNAME\tEMAIL\tPHONE\tCITY")
					for _, view := range views {
						city := ""
						if view.Address != nil {
							city = view.Address.City
						}
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", view.TaxID, view.Name, view.Email, view.Phone, city)
					}
				})
			})
		},
	}
}

func newClientAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		person personFlags
		phone  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &usecase.ClientInput{
				TaxID:   person.taxID,
				Name:    person.name,
				Email:   person.email,
				Phone:   phone,
				Address: person.address,
			}

			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				client, err := app.Clients.RegisterClient(ctx, input)
				if err != nil {
					return err
				}

				view := newClientView(client)

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "registered client %s (%s)\n", view.Name, view.TaxID)
				})
			})
		},
	}

	person.register(cmd.Flags())
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")

	return cmd
}

func newClientShowCommand(rootOpts *RootOptions) *cobra.Command {
	var taxID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				client, err := app.Clients.GetClient(ctx, taxID)
				if err != nil {
					return err
				}
				if client == nil {
					return domainerrors.ErrClientNotFound.WithDetails("tax id " + taxID)
				}

				view := newClientView(client)

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "Tax ID:\t%s\n", view.TaxID)
					fmt.Fprintf(w, "Name:\t%s\n", view.Name)
					fmt.Fprintf(w, "Email:\t%s\n", view.Email)
					fmt.Fprintf(w, "Phone:\t%s\n", view.Phone)
					if view.Address != nil {
						fmt.Fprintf(w, "Address:\t%s %s, %s, %s\n",
							view.Address.Street, view.Address.Number, view.Address.Neighborhood, view.Address.City)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&taxID, "tax-id", "", "tax identifier of the client")
	_ = cmd.MarkFlagRequired("tax-id")

	return cmd
}

func newClientDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var taxID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a client together with its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				if err := app.Clients.DeleteClient(ctx, taxID); err != nil {
					return err
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(
					map[string]any{"deleted": taxID},
					func(w io.Writer) { fmt.Fprintf(w, "deleted client %s\n", taxID) },
				)
			})
		},
	}

	cmd.Flags().StringVar(&taxID, "tax-id", "", "tax identifier of the client")
	_ = cmd.MarkFlagRequired("tax-id")

	return cmd
}
