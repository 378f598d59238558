package repository

import (
	"context"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// ClearSubInventory deja sin sub-inventario ni localizador a las categorías que apuntan a él.
	ClearSubInventory(ctx context.Context, subInventoryID string) error
}
