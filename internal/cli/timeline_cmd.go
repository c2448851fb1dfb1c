package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var cells, days int
	var from, today time.Time
	var legend bool

	cmd := &cobra.Command{
		Use:   "timeline PLAN",
		Short: "Print a plan's Gantt chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cells") {
				cells = app.settings().CellsPerDay
			}

			tl, err := buildTerminalTimeline(cmd, app, planID, cells, today)
			if err != nil {
				return err
			}

			opts := formatter.GanttOptions{CellsPerDay: cells, Days: days, Legend: legend}
			if !from.IsZero() {
				start, _ := calendar.ParseDate(tl.StartDate)
				if from.After(start) {
					opts.Offset = calendar.DaysBetween(start, from)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderGantt(tl, opts))
			return nil
		},
	}

	cmd.Flags().IntVar(&cells, "cells", 3, "Terminal columns per day")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days to show (0 = whole plan)")
	cmd.Flags().Var(newDateValue(&from), "from", "First day to show (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&today), "today", "Date to mark as today (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&legend, "legend", true, "Print the phase legend")

	return cmd
}

// buildTerminalTimeline lays a plan out in terminal cells: one day is
// cells columns wide and each lane is one row.
func buildTerminalTimeline(cmd *cobra.Command, app *App, planID string, cells int, today time.Time) (*contract.TimelineResponse, error) {
	if cells < 1 {
		return nil, fmt.Errorf("--cells must be at least 1, got %d", cells)
	}
	req := contract.NewTimelineRequest(planID)
	req.PixelsPerDay = float64(cells)
	req.Geometry = formatter.TerminalGeometry
	if !today.IsZero() {
		req.Now = &today
	}
	return app.Timeline.Build(cmd.Context(), req)
}
