package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui PLAN",
		Short: "Open the interactive split timeline for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("tui needs an interactive terminal; use \"tempo timeline %s\" instead", args[0])
			}

			m := newTimelineModel(app, planID)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			m.split.Cancel()
			return err
		},
	}
}
