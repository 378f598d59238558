package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/domain"
)

// Estados de una transferencia de stock.
const (
	TransferStatusPending    = "pending"
	TransferStatusProcessing = "processing"
	TransferStatusCompleted  = "completed"
	TransferStatusCancelled  = "cancelled"
)

// Eventos que disparan transiciones.
const (
	TransferEventApprove  = "approve"
	TransferEventComplete = "complete"
	TransferEventCancel   = "cancel"
)

// transferTransitions: evento -> estado origen permitido -> estado destino.
var transferTransitions = map[string]map[string]string{
	TransferEventApprove: {
		TransferStatusPending: TransferStatusProcessing,
	},
	TransferEventComplete: {
		TransferStatusProcessing: TransferStatusCompleted,
	},
	TransferEventCancel: {
		TransferStatusPending:    TransferStatusCancelled,
		TransferStatusProcessing: TransferStatusCancelled,
		TransferStatusCancelled:  TransferStatusCancelled,
	},
}

// ValidTransferStatus indica si s es un estado conocido.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusProcessing, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// NextTransferStatus devuelve el estado resultante de aplicar event sobre current.
// Retorna domain.ErrInvalidTransition si el evento no aplica desde current.
func NextTransferStatus(current, event string) (string, error) {
	next, ok := transferTransitions[event][current]
	if !ok {
		return "", fmt.Errorf("%w: no se puede %s una transferencia en estado '%s'", domain.ErrInvalidTransition, event, current)
	}
	return next, nil
}

// StockTransfer movimiento registrado de una cantidad de un producto entre dos localizadores.
// Los campos *Name son una foto tomada al crear la transferencia: no se refrescan después,
// por lo que pueden quedar desactualizados si se renombran los registros de origen.
type StockTransfer struct {
	ID                    string
	ProductID             string
	SourceLocatorID       *string
	DestinationLocatorID  *string
	SourceCategoryID      *string
	DestinationCategoryID *string
	Quantity              int
	Status                string
	Notes                 string
	CreatedBy             *string

	SourceSubInventoryName      string
	SourceLocatorName           string
	SourceCategoryName          string
	SourceProductName           string
	DestinationSubInventoryName string
	DestinationLocatorName      string
	DestinationCategoryName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply aplica el evento sobre la transferencia y actualiza UpdatedAt.
func (t *StockTransfer) Apply(event string, now time.Time) error {
	next, err := NextTransferStatus(t.Status, event)
	if err != nil {
		return err
	}
	t.Status = next
	t.UpdatedAt = now
	return nil
}

// IsFinal indica si la transferencia ya no admite cambios de stock.
func (t *StockTransfer) IsFinal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}
