package dto

import (
	"io"
	"time"
)

// OrganizationRequest campos del formulario multipart de POST /organization.
type OrganizationRequest struct {
	Name         string `form:"name" validate:"required,min=1,max=255"`
	LegalAddress string `form:"legal_address"`
	GSTNumber    string `form:"gst_number" validate:"omitempty,max=50"`
	VATNumber    string `form:"vat_number" validate:"omitempty,max=50"`
	CIN          string `form:"cin" validate:"omitempty,max=50"`
	PANNumber    string `form:"pan_number" validate:"omitempty,max=50"`
	StartDate    string `form:"start_date"` // YYYY-MM-DD
}

// FileUpload archivo adjunto recibido por HTTP.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// OrganizationResponse salida de la organización con sub-inventarios y localizadores.
type OrganizationResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	LegalAddress   string                 `json:"legal_address"`
	GSTNumber      string                 `json:"gst_number"`
	VATNumber      string                 `json:"vat_number"`
	CIN            string                 `json:"cin"`
	PANNumber      string                 `json:"pan_number"`
	StartDate      *string                `json:"start_date"`
	HasAttachment  bool                   `json:"has_attachment"`
	SubInventories []SubInventoryResponse `json:"sub_inventories"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// SubInventoryRequest entrada para crear o actualizar un sub-inventario.
type SubInventoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Type string `json:"type" validate:"omitempty,max=100"`
}

// SubInventoryResponse salida de un sub-inventario.
type SubInventoryResponse struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	Name           string            `json:"name"`
	Type           string            `json:"type"`
	Locators       []LocatorResponse `json:"locators"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// LocatorRequest entrada para crear o actualizar un localizador. Dimensiones opcionales.
type LocatorRequest struct {
	Code        string   `json:"code" validate:"required,min=1,max=100"`
	Description string   `json:"description"`
	Length      *float64 `json:"length" validate:"omitempty,gte=0"`
	Width       *float64 `json:"width" validate:"omitempty,gte=0"`
	Height      *float64 `json:"height" validate:"omitempty,gte=0"`
}

// LocatorResponse salida de un localizador.
type LocatorResponse struct {
	ID             string    `json:"id"`
	SubInventoryID string    `json:"sub_inventory_id"`
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	Length         *float64  `json:"length"`
	Width          *float64  `json:"width"`
	Height         *float64  `json:"height"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
