package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/config"
	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

const reportTimeout = 2 * time.Minute

// StockReporter generates and publishes a stock report.
type StockReporter interface {
	Run(ctx context.Context) (models.StockReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter StockReporter
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, reporter StockReporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Standard 5-field cron expressions, evaluated in local time.
	c := cron.New()

	return &Scheduler{
		cron:     c,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the stock report job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("stock_report", s.cfg.StockCronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.StockCronSchedule, s.runStockReport); err != nil {
		return fmt.Errorf("schedule stock report %q: %w", s.cfg.StockCronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Entries returns the next run times of the registered jobs.
func (s *Scheduler) Entries() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Next)
	}
	return next
}

func (s *Scheduler) runStockReport() {
	s.logger.Info("generating stock report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report, err := s.reporter.Run(ctx)
	if err != nil {
		s.logger.Error("stock report failed", zap.Error(err))
		return
	}

	s.logger.Info("stock report published",
		zap.Int("out", report.Out),
		zap.Int("low", report.Low))
}
