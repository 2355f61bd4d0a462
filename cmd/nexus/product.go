package main

import (
	"context"
	"fmt"
	"io"

	"nexus/internal/usecase"

	"github.com/spf13/cobra"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalogue",
	}

	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductDeleteCommand(rootOpts))

	return cmd
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every product with its stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				products, err := app.Products.ListProducts(ctx)
				if err != nil {
					return err
				}

				views := make([]productView, 0, len(products))
				for _, product := range products {
					views = append(views, newProductView(product))
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(views, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME\tPRICE\tCOST\tSTOCK\tCATEGORY")
					for _, view := range views {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
							view.ID, view.Name, view.UnitPrice, view.CostPrice, view.Quantity, view.Category)
					}
				})
			})
		},
	}
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name     string
		price    string
		cost     string
		quantity int
		category string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a product to the catalogue",
		Example: `  nexus product add --name Widget --price 10.00 --cost 6.00 --quantity 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unitPrice, err := parseMoney("price", price)
			if err != nil {
				return err
			}
			costPrice, err := parseMoney("cost", cost)
			if err != nil {
				return err
			}

			input := &usecase.ProductInput{
				Name:      name,
				UnitPrice: unitPrice,
				CostPrice: costPrice,
				Quantity:  quantity,
				Category:  category,
			}

			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				product, err := app.Products.CreateProduct(ctx, input)
				if err != nil {
					return err
				}

				view := newProductView(product)

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(view, func(w io.Writer) {
					fmt.Fprintf(w, "added product %d %s (stock %d)\n", view.ID, view.Name, view.Quantity)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "0", "unit sale price")
	cmd.Flags().StringVar(&cost, "cost", "0", "unit cost price")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "units in stock")
	cmd.Flags().StringVar(&category, "category", "", "product category")

	return cmd
}

func newProductDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a product that has no recorded sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApplication(cmd, rootOpts, func(ctx context.Context, app *application) error {
				if err := app.Products.DeleteProduct(ctx, id); err != nil {
					return err
				}

				return newPrinter(rootOpts, cmd.OutOrStdout()).success(
					map[string]any{"deleted": id},
					func(w io.Writer) { fmt.Fprintf(w, "deleted product %d\n", id) },
				)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "product identifier")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
