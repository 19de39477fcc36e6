package sheets

import (
	"context"
	"time"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// StockExporter writes each flagged item of a stock report as a sheet row:
// date, book title, book id, stock, status, last update.
type StockExporter struct {
	repo       Repository
	sheetRange string
}

// NewStockExporter binds an exporter to a sheet range such as "Stock!A:F".
func NewStockExporter(repo Repository, sheetRange string) *StockExporter {
	return &StockExporter{repo: repo, sheetRange: sheetRange}
}

// SaveStockReport appends the report rows.
func (e *StockExporter) SaveStockReport(ctx context.Context, report models.StockReport) error {
	return e.repo.AppendRows(ctx, e.sheetRange, StockRows(report))
}

// StockRows renders the flagged items of a report.
func StockRows(report models.StockReport) [][]interface{} {
	day := report.GeneratedAt.Format(time.DateOnly)
	rows := make([][]interface{}, 0, len(report.Items))
	for _, item := range report.Items {
		rows = append(rows, []interface{}{
			day,
			item.Title,
			item.BookID.String(),
			item.Stock,
			string(item.Status),
			item.LastUpdated.String(),
		})
	}
	return rows
}
