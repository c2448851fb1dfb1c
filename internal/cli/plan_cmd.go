package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage release plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanUpdateCmd(app),
		newPlanStatusCmd(app),
		newPlanRemoveCmd(app),
		newPlanImportCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var shortID, name, product, status string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var p *domain.Plan
			if missing := missingFlags(cmd, "id", "name", "start", "end"); len(missing) > 0 {
				if !app.interactive() {
					return requiredFlagsError(missing)
				}
				values := planFormValues{ShortID: shortID, Name: name}
				if !start.IsZero() {
					values.Start = calendar.FormatDate(start)
				}
				if !end.IsZero() {
					values.End = calendar.FormatDate(end)
				}
				if err := wizardPlan(ctx, app, &values).Run(); err != nil {
					return err
				}
				var err error
				if p, err = values.toPlan(); err != nil {
					return err
				}
			} else {
				p = &domain.Plan{
					ShortID:   strings.ToUpper(shortID),
					Name:      name,
					StartDate: start,
					EndDate:   end,
					Status:    domain.PlanActive,
				}
			}

			if cmd.Flags().Changed("status") {
				p.Status = domain.PlanStatus(status)
			}
			if product != "" {
				productID, err := resolveProductID(ctx, app, product)
				if err != nil {
					return err
				}
				p.ProductID = &productID
			}

			if err := app.Plans.Create(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s [%s] %s\n", p.Name, p.ShortID, formatter.DateRange(p.StartDate, p.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + version, e.g. WEB-3)")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&product, "product", "", "Product name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Plan status (draft|active|shipped|archived)")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool
	var product string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var plans []*domain.Plan
			var err error
			if product != "" {
				productID, rErr := resolveProductID(ctx, app, product)
				if rErr != nil {
					return rErr
				}
				plans, err = app.Plans.ListByProduct(ctx, productID)
			} else {
				plans, err = app.Plans.List(ctx, all)
			}
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans found.")
				return nil
			}

			names, err := productNames(cmd, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived plans")
	cmd.Flags().StringVar(&product, "product", "", "Only plans of this product (name or ID)")

	return cmd
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PLAN",
		Short: "Show a plan with its phases and features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			features, err := app.Features.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			data := formatter.PlanInspectData{Plan: p, Phases: phases, Features: features}
			if p.ProductID != nil {
				if prod, err := app.Products.GetByID(ctx, *p.ProductID); err == nil {
					data.Product = prod.Name
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanInspect(data))
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var shortID, name, product string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "update PLAN",
		Short: "Update a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				p.ShortID = strings.ToUpper(shortID)
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("start") {
				p.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				p.EndDate = end
			}
			if cmd.Flags().Changed("product") {
				if product == "" {
					p.ProductID = nil
				} else {
					productID, err := resolveProductID(ctx, app, product)
					if err != nil {
						return err
					}
					p.ProductID = &productID
				}
			}

			if err := app.Plans.Update(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated plan %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&product, "product", "", "Product name or ID (empty to detach)")

	return cmd
}

func newPlanStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PLAN STATUS",
		Short: "Set a plan's status (draft|active|shipped|archived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.PlanStatus(strings.ToLower(args[1]))
			if err := app.Plans.SetStatus(ctx, planID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan %s is now %s\n", args[0], status)
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN",
		Short: "Remove a plan with its phases and features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s\n", args[0])
			return nil
		},
	}
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported plan %s [%s]: %d phases, %d features\n",
				result.Plan.Name, result.Plan.ShortID, result.PhaseCount, result.FeatureCount)
			return nil
		},
	}
}

func productNames(cmd *cobra.Command, app *App) (map[string]string, error) {
	products, err := app.Products.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}
