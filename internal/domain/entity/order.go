package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-management-api/internal/domain"
)

// Tipos de orden.
const (
	OrderTypeSell     = "sell"
	OrderTypePurchase = "purchase"
)

// Estados de una orden.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderType indica si t es sell o purchase.
func ValidOrderType(t string) bool {
	return t == OrderTypeSell || t == OrderTypePurchase
}

// Order orden de venta (descuenta stock al aprobar) o de compra (lo incrementa).
type Order struct {
	ID           string
	UserID       string
	CustomerID   *string
	CustomerName string // foto del nombre del cliente al crear
	Type         string
	Status       string
	Total        decimal.Decimal
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem línea de una orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID *string
	Quantity  int
	Price     decimal.Decimal
}

// LineTotal cantidad * precio.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal suma las líneas y la asigna a Total.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	o.Total = total
	return total
}

// IsFinal indica si la orden está completada o cancelada.
func (o *Order) IsFinal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// Approve pasa la orden de pending a completed. Cualquier otro estado es inválido.
func (o *Order) Approve(now time.Time) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: solo se pueden aprobar órdenes pendientes (estado actual '%s')", domain.ErrInvalidTransition, o.Status)
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = now
	return nil
}

// Reject cancela una orden pending o processing.
func (o *Order) Reject(now time.Time) error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusProcessing {
		return fmt.Errorf("%w: no se puede rechazar una orden en estado '%s'", domain.ErrInvalidTransition, o.Status)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
	return nil
}

// SetStatus cambio manual de estado: solo pending/processing y nunca desde un estado final.
func (o *Order) SetStatus(status string, now time.Time) error {
	if status != OrderStatusPending && status != OrderStatusProcessing {
		return fmt.Errorf("%w: estado '%s' no permitido", domain.ErrInvalidInput, status)
	}
	if o.IsFinal() {
		return fmt.Errorf("%w: la orden ya está en estado '%s'", domain.ErrInvalidTransition, o.Status)
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}
