package cli

import (
	"log/slog"

	"github.com/alexanderramin/tempo/internal/config"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/uistate"
	"github.com/spf13/cobra"
)

// App holds the services and settings shared by every command.
type App struct {
	Products service.ProductService
	Plans    service.PlanService
	Phases   service.PhaseService
	Features service.FeatureService
	Timeline service.TimelineService
	Layout   service.LayoutService
	Import   service.ImportService

	// Store keeps per-plan split-pane state between runs.
	Store  uistate.Store
	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// settings returns the loaded config, or built-in defaults when none was
// wired (tests).
func (a *App) settings() config.Config {
	if a.Config != nil {
		return *a.Config
	}
	return config.Defaults()
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Release planner with a Gantt timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProductCmd(app),
		newPlanCmd(app),
		newPhaseCmd(app),
		newFeatureCmd(app),
		newTimelineCmd(app),
		newLayoutCmd(app),
		newServeCmd(app),
		newTUICmd(app),
	)

	return root
}
