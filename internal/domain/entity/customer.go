package entity

import "time"

// Customer representa un cliente (destinatario de órdenes de venta).
type Customer struct {
	ID        string
	Name      string
	Email     string // único
	Phone     string
	Address   string
	GST       string
	City      string
	State     string
	Pin       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}
