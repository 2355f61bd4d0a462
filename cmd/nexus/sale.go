package main

import (
	"context"
	"fmt"
	"io"

	"nexus/internal/domain/entity"
	"nexus/internal/usecase"

	"github.com/spf13/cobra"
)

// NewSaleCommand creates the sale command group.
func NewSaleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and list sales",
	}

	cmd.AddCommand(newSaleRecordCommand(rootOpts))
	cmd.AddCommand(newSaleListCommand(rootOpts))

	return cmd
}

func newSaleRecordCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		clientTaxID string
		productID   int64
		quantity    int
		date        string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale, decrement stock and recompute the proprietor's cash",
		Long: `Record a sale of --quantity units of product --product to the client with tax id --client.
The sale, the stock decrement and the cash recomputation commit together or not at all.
--date defaults to today.`,
		Example: `  nexus sale record --client 11122233344 --product 1 --quantity 2 --date 2024-03-05`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saleDate, err := parseDate(date)
			if err != nil {
				return err
			}

			input := &usecase.RecordSaleInput{
				ClientTaxID: clientTaxID,
				ProductID:   productID,
				Quantity:    quantity,
				Date:        saleDate,
			}

			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				sale, err := app.Sales.RecordSale(ctx, input)
				if err != nil {
					return err
				}

				view := saleView{
					ID:          sale.ID,
					Date:        formatDate(sale.Date),
					Quantity:    sale.Quantity,
					Profit:      sale.Profit.StringFixed(2),
					ClientTaxID: clientTaxID,
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "recorded sale %d on %s: %d unit(s), profit %s\n",
						view.ID, view.Date, view.Quantity, view.Profit)
				})
			})
		},
	}

	cmd.Flags().StringVar(&clientTaxID, "client", "", "tax id of the buying client")
	cmd.Flags().Int64Var(&productID, "product", 0, "product identifier")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "units sold")
	cmd.Flags().StringVar(&date, "date", "", "sale date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func newSaleListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every sale with its client and product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				details, err := app.Sales.ListSales(ctx)
				if err != nil {
					return err
				}

				return printSales(newPrinter(rootOpts, cmd.OutOrStdout()), details)
			})
		},
	}
}

func printSales(out *printer, details []*entity.SaleDetail) error {
	views := make([]saleView, 0, len(details))
	for _, detail := range details {
		views = append(views, newSaleView(detail))
	}

	return out.success(views, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tDATE\tCLIENT\tPRODUCT\tQTY\tPROFIT")
		for _, view := range views {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				view.ID, view.Date, view.ClientName, view.Product.Name, view.Quantity, view.Profit)
		}
	})
}
