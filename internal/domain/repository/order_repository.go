package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes. UserID nil = todas.
type OrderFilter struct {
	UserID *string
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Los métodos de lectura cargan Items.
type OrderRepository interface {
	// Create inserta la cabecera y todas sus líneas.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// List retorna las órdenes más recientes primero.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
