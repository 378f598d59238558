package entity

import "time"

// Organization datos legales de la organización (se gestiona una sola).
type Organization struct {
	ID            string
	Name          string
	LegalAddress  string
	GSTNumber     string
	VATNumber     string
	CIN           string
	PANNumber     string
	StartDate     *time.Time
	AttachmentKey string // clave en el storage, vacío si no hay adjunto
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SubInventory subdivisión del espacio de inventario de la organización.
type SubInventory struct {
	ID             string
	OrganizationID string
	Name           string
	Type           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locator posición física (slot) dentro de un sub-inventario.
type Locator struct {
	ID             string
	SubInventoryID string
	Code           string
	Description    string
	Length         *float64
	Width          *float64
	Height         *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
