package main

import (
	"context"
	"fmt"
	"io"

	"nexus/internal/usecase"

	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command group. Every report covers one calendar month.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly profit, best seller and sales reports",
	}

	cmd.AddCommand(newReportProfitCommand(rootOpts))
	cmd.AddCommand(newReportBestSellerCommand(rootOpts))
	cmd.AddCommand(newReportSalesCommand(rootOpts))

	return cmd
}

// monthCommand builds a report subcommand taking a required --month flag.
func monthCommand(use, short string, run func(cmd *cobra.Command, month string, period usecase.Period) error) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parseMonth(month)
			if err != nil {
				return err
			}

			return run(cmd, month, period)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "reporting month (YYYY-MM)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func newReportProfitCommand(rootOpts *RootOptions) *cobra.Command {
	return monthCommand("profit", "Total profit of the sales recorded in a month",
		func(cmd *cobra.Command, month string, period usecase.Period) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				profit, err := app.Reports.MonthlyProfit(ctx, period)
				if err != nil {
					return err
				}

				data := map[string]string{"month": month, "profit": profit.StringFixed(2)}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(data, func(w io.Writer) {
					fmt.Fprintf(w, "profit for %s:\t%s\n", month, data["profit"])
				})
			})
		})
}

func newReportBestSellerCommand(rootOpts *RootOptions) *cobra.Command {
	return monthCommand("best-seller", "Product with the most units sold in a month",
		func(cmd *cobra.Command, month string, period usecase.Period) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				best, err := app.Reports.BestSeller(ctx, period)
				if err != nil {
					return err
				}

				view := bestSellerView{Month: month}
				if best != nil {
					view.ProductID = best.ProductID
					view.ProductName = best.ProductName
					view.Quantity = best.Quantity
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					if best == nil {
						fmt.Fprintf(w, "no sales in %s\n", month)

						return
					}
					fmt.Fprintf(w, "best seller for %s:\t%s (id %d), %d unit(s)\n",
						month, view.ProductName, view.ProductID, view.Quantity)
				})
			})
		})
}

func newReportSalesCommand(rootOpts *RootOptions) *cobra.Command {
	return monthCommand("sales", "Every sale recorded in a month",
		func(cmd *cobra.Command, month string, period usecase.Period) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				details, err := app.Reports.MonthlySales(ctx, period)
				if err != nil {
					return err
				}

				return printSales(newPrinter(rootOpts, cmd.OutOrStdout()), details)
			})
		})
}
