package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/export"
)

func cellValue(t *testing.T, sheet *xlsx.Sheet, row, col int) string {
	t.Helper()
	c, err := sheet.Cell(row, col)
	require.NoError(t, err)
	return c.String()
}

func TestExportProducts(t *testing.T) {
	s := seed(t)
	uc := usecase.NewExportUseCase(s.Products(), s.Categories(), s.Transfers(), export.NewXLSXExporter())

	data, err := uc.Products(context.Background())
	require.NoError(t, err)
	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	assert.Equal(t, "Name", cellValue(t, sheet, 0, 1))
	assert.Equal(t, "Tornillo", cellValue(t, sheet, 1, 1))
	assert.Equal(t, "2.50", cellValue(t, sheet, 1, 3))
	assert.Equal(t, "Ferretería", cellValue(t, sheet, 1, 5))
}

func TestExportTransfers_Filtrado(t *testing.T) {
	s := seed(t)
	now := time.Now().UTC()
	addTransfer(t, s, "t-1", entity.TransferStatusCompleted, 3, now)
	addTransfer(t, s, "t-2", entity.TransferStatusPending, 1, now)
	uc := usecase.NewExportUseCase(s.Products(), s.Categories(), s.Transfers(), export.NewXLSXExporter())

	data, err := uc.Transfers(context.Background(), repository.TransferFilter{Status: entity.TransferStatusCompleted})
	require.NoError(t, err)
	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	sheet := file.Sheets[0]
	assert.Equal(t, "Stock Transfers", sheet.Name)
	assert.Equal(t, 2, sheet.MaxRow, "encabezado + una transferencia")
	assert.Equal(t, "t-1", cellValue(t, sheet, 1, 0))
	assert.Equal(t, "A-01", cellValue(t, sheet, 1, 5))
}
