package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	client "github.com/libreria-gestion/backoffice/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	f.sent = append(f.sent, req)
	if f.err != nil {
		return nil, f.err
	}
	return &client.SendTextMessageResponse{}, nil
}

func sampleReport() models.StockReport {
	return models.StockReport{
		GeneratedAt: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC),
		Total:       3,
		Out:         1,
		Low:         1,
		Items: []models.StockReportItem{
			{Title: "Dune", Stock: 0, Status: models.StockOut},
			{Title: "Emma", Stock: 3, Status: models.StockLow},
		},
	}
}

func TestFormatStockAlert(t *testing.T) {
	want := "Stock report 2024-05-10: 1 out of stock, 1 low.\n" +
		"- [OUT] Dune: 0\n" +
		"- [LOW] Emma: 3"
	assert.Equal(t, want, FormatStockAlert(sampleReport()))
}

func TestFormatStockAlertTruncates(t *testing.T) {
	report := models.StockReport{}
	for i := 0; i < maxAlertItems+5; i++ {
		report.Items = append(report.Items, models.StockReportItem{Title: fmt.Sprintf("Book %d", i), Stock: 1, Status: models.StockLow})
	}
	text := FormatStockAlert(report)
	assert.Equal(t, maxAlertItems, strings.Count(text, "[LOW]"))
	assert.True(t, strings.HasSuffix(text, "... and 5 more"))
}

func TestStockAlerterSendsFlaggedReport(t *testing.T) {
	fake := &fakeClient{}
	alerter := NewStockAlerter(fake, "573001234567", nil)

	require.NoError(t, alerter.SaveStockReport(context.Background(), sampleReport()))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "573001234567", fake.sent[0].To)
	assert.Contains(t, fake.sent[0].Body, "[OUT] Dune")
}

func TestStockAlerterSkipsEmptyReport(t *testing.T) {
	fake := &fakeClient{}
	alerter := NewStockAlerter(fake, "573001234567", nil)

	require.NoError(t, alerter.SaveStockReport(context.Background(), models.StockReport{Total: 4, Available: 4}))
	assert.Empty(t, fake.sent)
}

func TestStockAlerterWrapsSendError(t *testing.T) {
	fake := &fakeClient{err: errors.New("rate limited")}
	alerter := NewStockAlerter(fake, "573001234567", nil)

	err := alerter.SaveStockReport(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
