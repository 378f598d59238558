package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// TransferFilter filtros del listado de transferencias. Campos vacíos/nil no filtran.
// From y To se aplican sobre created_at (ambos inclusivos).
type TransferFilter struct {
	Status    string
	ProductID string
	From      *time.Time
	To        *time.Time
	// Ascending ordena por created_at ascendente; por defecto el más reciente primero.
	Ascending bool
}

// StockTransferRepository define el puerto de persistencia para StockTransfer.
type StockTransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id string) (*entity.StockTransfer, error)
	// GetForUpdate bloquea la fila de la transferencia (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error)
	List(ctx context.Context, filter TransferFilter) ([]*entity.StockTransfer, error)
	// UpdateStatus persiste Status, Notes y UpdatedAt.
	UpdateStatus(ctx context.Context, transfer *entity.StockTransfer) error
	// CancelOpenByLocators cancela las transferencias no finales cuyo origen o destino esté en
	// locatorIDs, agregando noteSuffix a sus notas. Retorna cuántas filas cambió.
	CancelOpenByLocators(ctx context.Context, locatorIDs []string, noteSuffix string, now time.Time) (int64, error)
}
