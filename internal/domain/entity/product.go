package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto con su existencia (stock) y categoría opcional.
// Un mismo nombre puede repetirse en varias categorías: cada fila es el stock de esa ubicación.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
