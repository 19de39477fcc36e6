package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	client "github.com/libreria-gestion/backoffice/pkg/clients/whatsapp"
)

// maxAlertItems caps the lines listed in one message; the rest are counted.
const maxAlertItems = 20

// StockAlerter sends a summary of flagged inventory to a WhatsApp recipient.
type StockAlerter struct {
	client    client.Client
	recipient string
	logger    *zap.Logger
}

// NewStockAlerter builds an alert sink for recipient.
func NewStockAlerter(c client.Client, recipient string, logger *zap.Logger) *StockAlerter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockAlerter{client: c, recipient: recipient, logger: logger}
}

// SaveStockReport sends an alert when the report flags any item. Reports
// with nothing low or out of stock are skipped.
func (a *StockAlerter) SaveStockReport(ctx context.Context, report models.StockReport) error {
	if len(report.Items) == 0 {
		a.logger.Debug("no stock alerts to send")
		return nil
	}

	resp, err := a.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:   a.recipient,
		Body: FormatStockAlert(report),
	})
	if err != nil {
		return fmt.Errorf("send stock alert: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.ID)
	}
	a.logger.Info("stock alert sent", zap.Strings("message_ids", ids), zap.Int("items", len(report.Items)))
	return nil
}

// FormatStockAlert renders the alert text.
func FormatStockAlert(report models.StockReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock report %s: %d out of stock, %d low.\n",
		report.GeneratedAt.Format("2006-01-02"), report.Out, report.Low)

	for i, item := range report.Items {
		if i == maxAlertItems {
			fmt.Fprintf(&b, "... and %d more\n", len(report.Items)-maxAlertItems)
			break
		}
		label := "LOW"
		if item.Status == models.StockOut {
			label = "OUT"
		}
		fmt.Fprintf(&b, "- [%s] %s: %d\n", label, item.Title, item.Stock)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
