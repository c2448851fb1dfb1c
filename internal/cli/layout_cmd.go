package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/splitpane"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or change a plan's saved split-pane layout",
	}

	cmd.AddCommand(
		newLayoutGetCmd(app),
		newLayoutSetCmd(app),
		newLayoutNudgeCmd(app),
		newLayoutToggleCmd(app),
	)

	return cmd
}

func newLayoutGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get PLAN",
		Short: "Show the saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Layout.Get(ctx, planID)
			if err != nil {
				return err
			}
			printLayout(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newLayoutSetCmd(app *App) *cobra.Command {
	var left float64
	var expanded bool

	cmd := &cobra.Command{
		Use:   "set PLAN",
		Short: "Set the left pane percent and/or expanded flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var upd contract.LayoutUpdate
			if cmd.Flags().Changed("left") {
				upd.LeftPercent = &left
			}
			if cmd.Flags().Changed("expanded") {
				upd.Expanded = &expanded
			}
			if upd.LeftPercent == nil && upd.Expanded == nil {
				return fmt.Errorf("nothing to change: pass --left and/or --expanded")
			}

			view, err := app.Layout.Update(ctx, planID, upd)
			if err != nil {
				return err
			}
			printLayout(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().Float64Var(&left, "left", 0, "Left pane width in percent (0-100)")
	cmd.Flags().BoolVar(&expanded, "expanded", true, "Show features under each phase")

	return cmd
}

func newLayoutNudgeCmd(app *App) *cobra.Command {
	var by float64

	cmd := &cobra.Command{
		Use:   "nudge PLAN",
		Short: "Move the divider by a number of percentage points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, planID, err := layoutController(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := ctrl.Nudge(by); err != nil {
				return err
			}
			return printSavedLayout(cmd, app, planID)
		},
	}

	cmd.Flags().Float64Var(&by, "by", 5, "Percentage points (negative moves left)")

	return cmd
}

func newLayoutToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PLAN",
		Short: "Collapse the left pane, or restore it when collapsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, planID, err := layoutController(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := ctrl.DoubleClick(); err != nil {
				return err
			}
			return printSavedLayout(cmd, app, planID)
		},
	}
}

// layoutController builds a controller with no pointer input, so only
// the keyboard and toggle paths are available.
func layoutController(cmd *cobra.Command, app *App, input string) (*splitpane.Controller, string, error) {
	planID, err := resolvePlanID(cmd.Context(), app, input)
	if err != nil {
		return nil, "", err
	}
	ctrl := splitpane.New(planID, app.Store, nil, nil,
		splitpane.WithCollapseThreshold(app.settings().CollapseThreshold))
	return ctrl, planID, nil
}

func printSavedLayout(cmd *cobra.Command, app *App, planID string) error {
	view, err := app.Layout.Get(cmd.Context(), planID)
	if err != nil {
		return err
	}
	printLayout(cmd.OutOrStdout(), view)
	return nil
}

func printLayout(w io.Writer, view contract.LayoutView) {
	state := "expanded"
	if !view.Expanded {
		state = "compact"
	}
	fmt.Fprintf(w, "left %.0f%%  right %.0f%%  %s\n", view.LeftPercent, 100-view.LeftPercent, state)
}
