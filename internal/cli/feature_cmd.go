package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newFeatureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage the features committed to a plan",
	}

	cmd.AddCommand(
		newFeatureAddCmd(app),
		newFeatureListCmd(app),
		newFeatureScheduleCmd(app),
		newFeatureStatusCmd(app),
		newFeatureRemoveCmd(app),
	)

	return cmd
}

func newFeatureAddCmd(app *App) *cobra.Command {
	var plan, title, phase, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a feature to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			f := &domain.Feature{
				PlanID: planID,
				Title:  title,
				Status: domain.FeatureStatus(strings.ToLower(status)),
			}
			if phase != "" {
				phaseID, err := resolvePhaseID(ctx, app, phase)
				if err != nil {
					return err
				}
				f.PhaseID = &phaseID
			}

			if err := app.Features.Create(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added feature %s [%s]\n", f.Title, f.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&title, "title", "", "Feature title")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID to schedule into")
	cmd.Flags().StringVar(&status, "status", string(domain.FeatureProposed), "Feature status")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newFeatureListCmd(app *App) *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "list PLAN",
		Short: "List a plan's features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var features []*domain.Feature
			if phase != "" {
				phaseID, rErr := resolvePhaseID(ctx, app, phase)
				if rErr != nil {
					return rErr
				}
				features, err = app.Features.ListByPhase(ctx, phaseID)
			} else {
				features, err = app.Features.ListByPlan(ctx, planID)
			}
			if err != nil {
				return err
			}
			if len(features) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No features found.")
				return nil
			}

			phases, err := app.Phases.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeatureList(features, formatter.PhaseTitles(phases)))
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Only features scheduled into this phase")

	return cmd
}

func newFeatureScheduleCmd(app *App) *cobra.Command {
	var phase string
	var unschedule bool

	cmd := &cobra.Command{
		Use:   "schedule FEATURE",
		Short: "Schedule a feature into a phase, or take it out with --unschedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if phase == "" && !unschedule {
				return fmt.Errorf("either --phase or --unschedule is required")
			}
			featureID, err := resolveFeatureID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var phaseID *string
			if !unschedule {
				id, err := resolvePhaseID(ctx, app, phase)
				if err != nil {
					return err
				}
				phaseID = &id
			}
			if err := app.Features.Schedule(ctx, featureID, phaseID); err != nil {
				return err
			}

			if phaseID == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Unscheduled feature %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Scheduled feature %s into phase %s\n", args[0], phase)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID")
	cmd.Flags().BoolVar(&unschedule, "unschedule", false, "Remove the feature from its phase")
	cmd.MarkFlagsMutuallyExclusive("phase", "unschedule")

	return cmd
}

func newFeatureStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status FEATURE STATUS",
		Short: "Set a feature's status (proposed|committed|in_progress|done|dropped)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			featureID, err := resolveFeatureID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.FeatureStatus(strings.ToLower(args[1]))
			if err := app.Features.SetStatus(ctx, featureID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Feature %s is now %s\n", args[0], formatter.FeatureStatusIndicator(status))
			return nil
		},
	}
}

func newFeatureRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove FEATURE",
		Short: "Remove a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			featureID, err := resolveFeatureID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Features.Delete(ctx, featureID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed feature %s\n", args[0])
			return nil
		},
	}
}
