package repository

import (
	"context"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* retornan (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene efecto dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetByNameAndCategory busca el producto con ese nombre dentro de la categoría y bloquea la fila.
	GetByNameAndCategory(ctx context.Context, name, categoryID string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	Delete(ctx context.Context, id string) error
}
