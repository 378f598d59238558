package entity

import "time"

// Category agrupa productos; opcionalmente asociada a un sub-inventario y un localizador.
type Category struct {
	ID             string
	Name           string // único
	Description    string
	SubInventoryID *string
	LocatorID      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
