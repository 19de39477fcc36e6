package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/lookup"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// Sink receives generated stock reports.
type Sink interface {
	SaveStockReport(ctx context.Context, report models.StockReport) error
}

// Service builds stock reports from the inventory and book collections.
type Service struct {
	inventory viewmodel.Source[models.InventoryRecord]
	books     viewmodel.Source[models.Book]
	sinks     []Sink
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(inventory viewmodel.Source[models.InventoryRecord], books viewmodel.Source[models.Book], logger *zap.Logger, sinks ...Sink) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		books:     books,
		sinks:     sinks,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the clock used to stamp reports.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// StockReport loads inventory and books concurrently and lists every row
// that is low or out of stock. Books are best effort: when they cannot be
// loaded the titles fall back to the placeholder.
func (s *Service) StockReport(ctx context.Context) (models.StockReport, error) {
	var (
		records []models.InventoryRecord
		books   []models.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.inventory.List(gctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		books, err = s.books.List(gctx)
		if err != nil {
			s.logger.Warn("books unavailable, titles omitted from stock report", zap.Error(err))
			books = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.StockReport{}, err
	}

	report := models.StockReport{
		GeneratedAt: s.now().UTC(),
		Total:       len(records),
		Items:       []models.StockReportItem{},
	}
	for _, rec := range records {
		status := models.ClassifyStock(rec.Stock)
		switch status {
		case models.StockAvailable:
			report.Available++
			continue
		case models.StockLow:
			report.Low++
		case models.StockOut:
			report.Out++
		}
		report.Items = append(report.Items, models.StockReportItem{
			InventoryID: rec.ID,
			BookID:      rec.BookID,
			Title:       lookup.Label(books, rec.BookID, func(b models.Book) string { return b.Title }),
			Stock:       rec.Stock,
			Status:      status,
			LastUpdated: rec.LastUpdated.Calendar(),
		})
	}

	s.logger.Info("stock report generated",
		zap.Int("total", report.Total),
		zap.Int("out", report.Out),
		zap.Int("low", report.Low))
	return report, nil
}

// Publish hands the report to every sink. A failing sink does not stop the
// others; all failures are returned joined.
func (s *Service) Publish(ctx context.Context, report models.StockReport) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.SaveStockReport(ctx, report); err != nil {
			s.logger.Error("stock report sink failed", zap.String("sink", fmt.Sprintf("%T", sink)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run generates a report and publishes it.
func (s *Service) Run(ctx context.Context) (models.StockReport, error) {
	report, err := s.StockReport(ctx)
	if err != nil {
		return models.StockReport{}, err
	}
	if err := s.Publish(ctx, report); err != nil {
		return report, fmt.Errorf("publish stock report: %w", err)
	}
	return report, nil
}
