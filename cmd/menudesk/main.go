package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/menudesk/internal/cli"
	"github.com/alexanderramin/menudesk/internal/config"
	"github.com/alexanderramin/menudesk/internal/db"
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/repository"
	"github.com/alexanderramin/menudesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	menuRepo := repository.NewSQLiteMenuRepo(database)
	stageRepo := repository.NewSQLiteProviderStageRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case observers: optional log lines on stderr and a metrics dump.
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	if cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		observers = append(observers, service.NewMetricsUseCaseObserver(reg))
		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.MetricsFile, reg); werr != nil && err == nil {
				err = fmt.Errorf("writing metrics: %w", werr)
			}
		}()
	}
	observer := service.MultiUseCaseObserver(observers)

	// Trees built by the CLI and by the menu service share one id sequence.
	ids := domain.NewSequenceGenerator()
	defaults := cfg.TreeConfig()

	app := &cli.App{
		Menus:  service.NewMenuService(menuRepo, uow, ids, defaults, observer),
		Stages: service.NewProviderStageService(stageRepo, observer),
		Import: service.NewImportService(uow, defaults, observer),
		IDs:    ids,
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
