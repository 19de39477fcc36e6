package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// StockReporter builds stock reports on demand.
type StockReporter interface {
	StockReport(ctx context.Context) (models.StockReport, error)
}

// ReportArchive reads archived stock reports.
type ReportArchive interface {
	LatestStockReport(ctx context.Context) (models.StockReport, error)
}

// ReportHandler serves stock reports.
type ReportHandler struct {
	reporter StockReporter
	archive  ReportArchive
	logger   *zap.Logger
}

// NewReportHandler constructs the handler. archive may be nil when no
// report store is configured.
func NewReportHandler(reporter StockReporter, archive ReportArchive, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reporter: reporter, archive: archive, logger: logger}
}

// Stock generates a fresh stock report.
func (h *ReportHandler) Stock(c *gin.Context) {
	report, err := h.reporter.StockReport(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build stock report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to build stock report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// LatestStock returns the most recent archived report.
func (h *ReportHandler) LatestStock(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report archive not configured"})
		return
	}

	report, err := h.archive.LatestStockReport(c.Request.Context())
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stock report archived yet"})
		return
	}
	if err != nil {
		h.logger.Error("failed to read archived stock report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read stock report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
