package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexanderramin/coursepulse/internal/cli"
	"github.com/alexanderramin/coursepulse/internal/config"
	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/repository"
	"github.com/alexanderramin/coursepulse/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg := config.LoadConfig()
	if cfg.DBPath == "" {
		return fmt.Errorf("no database path: set COURSEPULSE_DB")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var outbox io.Writer = os.Stdout
	if cfg.OutboxPath != "" {
		f, err := os.OpenFile(cfg.OutboxPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening outbox: %w", err)
		}
		defer f.Close()
		outbox = f
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire repositories
	repos := service.NewSQLiteRepos(database)
	notifications := repository.NewSQLiteNotificationLogRepo(database)
	oracle := service.NewRoleCapabilityOracle(repos.Roles)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	settings := cfg.Settings()
	app := &cli.App{
		Progress:    service.NewProgressService(repos, oracle, settings, observer),
		Overview:    service.NewOverviewService(repos, oracle, settings, observer),
		Submissions: service.NewSubmissionService(repos, observer),
		Notify: service.NewNotifyService(repos, oracle, notifications,
			notify.NewWriterSender(outbox), uow, settings, observer),
		Import: service.NewImportService(uow, observer),
		Config: cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
