package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/config"
	"github.com/libreria-gestion/backoffice/internal/repository/mongodb"
	"github.com/libreria-gestion/backoffice/internal/repository/sheets"
	"github.com/libreria-gestion/backoffice/internal/scheduler"
	"github.com/libreria-gestion/backoffice/internal/screens"
	"github.com/libreria-gestion/backoffice/internal/server/handlers"
	"github.com/libreria-gestion/backoffice/internal/server/router"
	reportingsvc "github.com/libreria-gestion/backoffice/internal/service/reporting"
	whatsappsvc "github.com/libreria-gestion/backoffice/internal/service/whatsapp"
	"github.com/libreria-gestion/backoffice/pkg/clients/libreria"
	whatsappclient "github.com/libreria-gestion/backoffice/pkg/clients/whatsapp"
	"github.com/libreria-gestion/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := libreria.NewClient(cfg.API, logger.Named(baseLogger, "client.libreria"))
	baseLogger.Info("data service configured",
		zap.String("environment", cfg.API.Environment),
		zap.String("base_url", cfg.API.BaseURL))

	var (
		sinks   []reportingsvc.Sink
		archive handlers.ReportArchive
	)

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, mongoRepo)
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, stock reports will not be archived")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks = append(sinks, sheets.NewStockExporter(sheetsRepo, cfg.Sheets.Range))
	} else {
		baseLogger.Warn("google sheets not configured, stock export disabled")
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		sinks = append(sinks, whatsappsvc.NewStockAlerter(whatsClient, cfg.WhatsApp.AlertRecipient, logger.Named(baseLogger, "svc.whatsapp")))
		baseLogger.Info("whatsapp stock alerts enabled")
	}

	reportingSvc := reportingsvc.NewService(apiClient.Inventory(), apiClient.Books(), logger.Named(baseLogger, "svc.reporting"), sinks...)

	navigator := screens.NewNavigator(screens.SourcesFrom(apiClient), screens.Options{
		NoticeTTL: cfg.UI.NoticeTTL,
		Logger:    logger.Named(baseLogger, "screens"),
	})
	defer navigator.Close()

	engine := router.New(
		handlers.NewScreenHandler(navigator, logger.Named(baseLogger, "handlers.screens")),
		handlers.NewReportHandler(reportingSvc, archive, logger.Named(baseLogger, "handlers.reports")),
		logger.Named(baseLogger, "router"),
	)

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
