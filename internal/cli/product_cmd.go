package cli

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p := &domain.Product{Name: args[0]}
				if err := app.Products.Create(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created product %s [%s]\n", p.Name, p.ID[:8])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List products",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				products, err := app.Products.List(ctx)
				if err != nil {
					return err
				}
				if len(products) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
					return nil
				}
				plans, err := app.Plans.List(ctx, true)
				if err != nil {
					return err
				}
				counts := make(map[string]int)
				for _, p := range plans {
					if p.ProductID != nil {
						counts[*p.ProductID]++
					}
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProductList(products, counts))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename PRODUCT NAME",
			Short: "Rename a product",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				id, err := resolveProductID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Products.Rename(ctx, id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed product to %s\n", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove PRODUCT",
			Short: "Remove a product; its plans are kept",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				id, err := resolveProductID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Products.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed product %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
