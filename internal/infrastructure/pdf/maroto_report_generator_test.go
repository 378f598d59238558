package pdf_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/pdf"
)

// readPDF abre el documento y devuelve páginas y texto plano.
func readPDF(t *testing.T, data []byte) (int, string) {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := r.GetPlainText()
	require.NoError(t, err)
	txt, err := io.ReadAll(plain)
	require.NoError(t, err)
	return r.NumPage(), string(txt)
}

func TestOrderPDF(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	order := &entity.Order{
		ID: "ORD123", UserID: "u1", CustomerName: "Cliente borrado",
		Type: entity.OrderTypeSell, Status: entity.OrderStatusPending,
		Total: decimal.RequireFromString("25.00"), CreatedAt: now, UpdatedAt: now,
	}
	data, err := pdf.NewMarotoReportGenerator("test").OrderPDF(context.Background(), reports.OrderReport{
		Order: order,
		Lines: []reports.OrderLine{{
			ProductName: "Tornillo", Quantity: 10,
			Price: decimal.RequireFromString("2.50"), LineTotal: decimal.RequireFromString("25.00"),
		}},
		GeneratedAt: now,
	})
	require.NoError(t, err)

	pages, txt := readPDF(t, data)
	assert.GreaterOrEqual(t, pages, 1)
	assert.Contains(t, txt, "ORD123")
	assert.Contains(t, txt, "Tornillo")
}

func TestTransferPDF(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	tr := &entity.StockTransfer{
		ID: "TRF456", Quantity: 3, Status: entity.TransferStatusProcessing,
		SourceProductName: "Tornillo", SourceSubInventoryName: "Bodega A", SourceLocatorName: "A-01",
		DestinationSubInventoryName: "Bodega B", DestinationLocatorName: "B-01",
		Notes:     "Reposicion semanal para la bodega B con prioridad alta",
		CreatedAt: now, UpdatedAt: now,
	}
	data, err := pdf.NewMarotoReportGenerator("test").TransferPDF(context.Background(), reports.TransferReport{
		Transfer: tr, GeneratedAt: now,
	})
	require.NoError(t, err)

	pages, txt := readPDF(t, data)
	assert.GreaterOrEqual(t, pages, 1)
	assert.Contains(t, txt, "TRF456")
}
