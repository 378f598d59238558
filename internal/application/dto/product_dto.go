package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no cambian.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	CategoryID  *string          `json:"category_id"`
	Category    *CategorySummary `json:"category,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// StockHistoryEntry una pata (salida o entrada) de una transferencia completada.
type StockHistoryEntry struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Quantity    int             `json:"quantity"`
	Type        string          `json:"type"`
	Notes       string          `json:"notes"`
	Location    *LocatorSummary `json:"location"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	TransferID  string          `json:"transfer_id"`
}
