package app

import (
	"context"
	"fmt"
	"log/slog"

	"LovdataScanner/internal/config"
	"LovdataScanner/internal/domain"
	"LovdataScanner/internal/infrastructure/scheduler"
	"LovdataScanner/internal/infrastructure/sheets"
	"LovdataScanner/internal/infrastructure/storage"
	"LovdataScanner/internal/infrastructure/telegram"
	"LovdataScanner/internal/ledger"
	"LovdataScanner/internal/logging"
	"LovdataScanner/internal/lovdata"
	"LovdataScanner/internal/ports"
	"LovdataScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. Configuration and credential
// problems surface here, before any scraping starts.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := sheets.NewTable(ctx, cfg.Sheet, baseLogger.With("component", "sheets"))
	if err != nil {
		return nil, fmt.Errorf("connect ledger: %w", err)
	}

	source := lovdata.NewClient(cfg.Lovdata.BaseURL, nil, baseLogger.With("component", "lovdata"))
	reconciler := ledger.NewReconciler(table, baseLogger.With("component", "ledger"))

	var repository ports.RunRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect run history: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:             source,
		Reconciler:         reconciler,
		Repository:         repository,
		Notifier:           notifier,
		Logger:             baseLogger.With("component", "pipeline"),
		LawsPackage:        cfg.Lovdata.LawsPackage,
		RegulationsPackage: cfg.Lovdata.RegulationsPackage,
	})

	return &Application{cfg: cfg, pipeline: pipeline}, nil
}

// RunOnce performs a single pipeline execution.
func (a *Application) RunOnce(ctx context.Context) (domain.RunSummary, error) {
	return a.pipeline.Run(ctx)
}

// Watch keeps the process alive, re-running the pipeline on the configured
// schedule until the context is cancelled.
func (a *Application) Watch(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression)
	runner := usecase.NewScheduler(driver, a.pipeline)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return runner.Stop(context.Background())
}
