package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/config"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/uistate"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	productRepo := repository.NewSQLiteProductRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	featureRepo := repository.NewSQLiteFeatureRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	state := uistate.NewDiskStore(cfg.StateDir)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Products: service.NewProductService(productRepo, observers...),
		Plans:    service.NewPlanService(planRepo, uow, state, observers...),
		Phases:   service.NewPhaseService(phaseRepo, planRepo, uow, observers...),
		Features: service.NewFeatureService(featureRepo, phaseRepo, planRepo, observers...),
		Timeline: service.NewTimelineService(planRepo, phaseRepo, featureRepo, state, observers...),
		Layout:   service.NewLayoutService(planRepo, state, observers...),
		Import:   service.NewImportService(uow, observers...),
		Store:    state,
		Config:   cfg,
		Logger:   logger,
	}

	// Detect interactive terminal for the wizard and the TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
