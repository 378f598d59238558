package dto

import "time"

// CategoryRequest entrada para crear o reemplazar una categoría.
type CategoryRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Description    string  `json:"description"`
	SubInventoryID *string `json:"sub_inventory_id" validate:"omitempty,uuid"`
	LocatorID      *string `json:"locator_id" validate:"omitempty,uuid"`
}

// CategoryResponse salida de una categoría con sus productos.
type CategoryResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	SubInventoryID *string           `json:"sub_inventory_id"`
	LocatorID      *string           `json:"locator_id"`
	Products       []ProductResponse `json:"products"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
