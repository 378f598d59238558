package repository

import (
	"context"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	// GetFirst retorna la organización más antigua; el sistema maneja una sola.
	GetFirst(ctx context.Context) (*entity.Organization, error)
	List(ctx context.Context) ([]*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
}

// SubInventoryRepository define el puerto de persistencia para SubInventory.
type SubInventoryRepository interface {
	Create(ctx context.Context, sub *entity.SubInventory) error
	GetByID(ctx context.Context, id string) (*entity.SubInventory, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SubInventory, error)
	Update(ctx context.Context, sub *entity.SubInventory) error
	// Delete elimina el sub-inventario; sus localizadores caen por CASCADE.
	Delete(ctx context.Context, id string) error
}

// LocatorRepository define el puerto de persistencia para Locator.
type LocatorRepository interface {
	Create(ctx context.Context, loc *entity.Locator) error
	GetByID(ctx context.Context, id string) (*entity.Locator, error)
	ListBySubInventory(ctx context.Context, subInventoryID string) ([]*entity.Locator, error)
	Update(ctx context.Context, loc *entity.Locator) error
	Delete(ctx context.Context, id string) error
}
