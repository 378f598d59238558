package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// ExportUseCase exporta listados a hojas de cálculo.
type ExportUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	transfers  repository.StockTransferRepository
	exporter   ports.SpreadsheetExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	transfers repository.StockTransferRepository,
	exporter ports.SpreadsheetExporter,
) *ExportUseCase {
	return &ExportUseCase{products: products, categories: categories, transfers: transfers, exporter: exporter}
}

// Products libro con una hoja de productos.
func (uc *ExportUseCase) Products(ctx context.Context) ([]byte, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	catNames := make(map[string]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}
	sheet := ports.Sheet{
		Name:    "Products",
		Headers: []string{"ID", "Name", "Description", "Price", "Stock", "Category", "Updated At"},
		Rows:    make([][]string, 0, len(list)),
	}
	for _, p := range list {
		cat := ""
		if p.CategoryID != nil {
			cat = catNames[*p.CategoryID]
		}
		sheet.Rows = append(sheet.Rows, []string{
			p.ID, p.Name, p.Description, p.Price.StringFixed(2), strconv.Itoa(p.Stock), cat,
			p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return uc.exporter.Export(sheet)
}

// Transfers libro con las transferencias que cumplen el filtro.
func (uc *ExportUseCase) Transfers(ctx context.Context, filter repository.TransferFilter) ([]byte, error) {
	list, err := uc.transfers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sheet := ports.Sheet{
		Name: "Stock Transfers",
		Headers: []string{
			"ID", "Product", "Quantity", "Status",
			"From Sub-inventory", "From Locator", "From Category",
			"To Sub-inventory", "To Locator", "To Category",
			"Notes", "Created At", "Updated At",
		},
		Rows: make([][]string, 0, len(list)),
	}
	for _, t := range list {
		sheet.Rows = append(sheet.Rows, []string{
			t.ID, t.SourceProductName, strconv.Itoa(t.Quantity), t.Status,
			t.SourceSubInventoryName, t.SourceLocatorName, t.SourceCategoryName,
			t.DestinationSubInventoryName, t.DestinationLocatorName, t.DestinationCategoryName,
			t.Notes, t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return uc.exporter.Export(sheet)
}
