package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage the phases of a plan",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseUpdateCmd(app),
		newPhaseShiftCmd(app),
		newPhaseResizeCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var plan, title, color string
	var order int
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			ph := &domain.Phase{
				PlanID:     planID,
				Title:      title,
				StartDate:  start,
				EndDate:    end,
				Color:      color,
				OrderIndex: order,
			}
			if err := app.Phases.Create(ctx, ph); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s %s [%s]\n", ph.Title, formatter.DateRange(ph.StartDate, ph.EndDate), ph.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&title, "title", "", "Phase title")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color as #rrggbb")
	cmd.Flags().IntVar(&order, "order", 0, "Sort position among the plan's phases")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PLAN",
		Short: "List a plan's phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No phases found.")
				return nil
			}
			features, err := app.Features.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseList(phases, formatter.FeaturesPerPhase(features)))
			return nil
		},
	}
}

func newPhaseUpdateCmd(app *App) *cobra.Command {
	var title, color string
	var order int
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "update PHASE",
		Short: "Update a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ph, err := app.Phases.GetByID(ctx, phaseID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				ph.Title = title
			}
			if cmd.Flags().Changed("start") {
				ph.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				ph.EndDate = end
			}
			if cmd.Flags().Changed("color") {
				ph.Color = color
			}
			if cmd.Flags().Changed("order") {
				ph.OrderIndex = order
			}

			if err := app.Phases.Update(ctx, ph); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated phase %s %s\n", ph.Title, formatter.DateRange(ph.StartDate, ph.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Phase title")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color as #rrggbb")
	cmd.Flags().IntVar(&order, "order", 0, "Sort position among the plan's phases")

	return cmd
}

func newPhaseShiftCmd(app *App) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "shift PHASE",
		Short: "Move a phase by whole days, keeping its length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ph, err := app.Phases.Shift(ctx, phaseID, by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved phase %s to %s\n", ph.Title, formatter.DateRange(ph.StartDate, ph.EndDate))
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 0, "Days to move (negative moves earlier)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newPhaseResizeCmd(app *App) *cobra.Command {
	var by int
	edge := domain.EdgeEnd

	cmd := &cobra.Command{
		Use:   "resize PHASE",
		Short: "Move one edge of a phase by whole days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ph, err := app.Phases.Resize(ctx, phaseID, edge, by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resized phase %s to %s\n", ph.Title, formatter.DateRange(ph.StartDate, ph.EndDate))
			return nil
		},
	}

	cmd.Flags().Var(newEdgeValue(&edge), "edge", "Edge to move (start|end)")
	cmd.Flags().IntVar(&by, "by", 0, "Days to move the edge (negative moves earlier)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PHASE",
		Short: "Remove a phase; its features become unscheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, phaseID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %s\n", args[0])
			return nil
		},
	}
}
