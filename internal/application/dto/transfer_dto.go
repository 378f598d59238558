package dto

import "time"

// CreateTransferRequest entrada para crear una transferencia de stock.
type CreateTransferRequest struct {
	ProductID             string  `json:"product_id" validate:"required,uuid"`
	Quantity              int     `json:"quantity"`
	SourceLocatorID       string  `json:"source_locator_id" validate:"required,uuid"`
	DestinationLocatorID  string  `json:"destination_locator_id" validate:"required,uuid"`
	SourceCategoryID      *string `json:"source_category_id" validate:"omitempty,uuid"`
	DestinationCategoryID *string `json:"destination_category_id" validate:"omitempty,uuid"`
	Notes                 string  `json:"notes"`
}

// TransferListQuery filtros de GET /stock-transfers.
type TransferListQuery struct {
	Status    string `query:"status"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// StockTransferResponse salida de una transferencia. Los campos *_name son los capturados al crearla.
type StockTransferResponse struct {
	ID                          string          `json:"id"`
	ProductID                   string          `json:"product_id"`
	Product                     *ProductSummary `json:"product"`
	SourceLocatorID             *string         `json:"source_locator_id"`
	DestinationLocatorID        *string         `json:"destination_locator_id"`
	Source                      *LocatorSummary `json:"source"`
	Destination                 *LocatorSummary `json:"destination"`
	SourceCategoryID            *string         `json:"source_category_id"`
	DestinationCategoryID       *string         `json:"destination_category_id"`
	Quantity                    int             `json:"quantity"`
	Status                      string          `json:"status"`
	Notes                       string          `json:"notes"`
	CreatedBy                   *string         `json:"created_by"`
	SourceSubInventoryName      string          `json:"source_subinventory_name"`
	SourceLocatorName           string          `json:"source_locator_name"`
	SourceCategoryName          string          `json:"source_category_name"`
	SourceProductName           string          `json:"source_product_name"`
	DestinationSubInventoryName string          `json:"destination_subinventory_name"`
	DestinationLocatorName      string          `json:"destination_locator_name"`
	DestinationCategoryName     string          `json:"destination_category_name"`
	CreatedAt                   time.Time       `json:"created_at"`
	UpdatedAt                   time.Time       `json:"updated_at"`
}
