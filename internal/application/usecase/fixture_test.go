package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/memory"
)

// seed organización "org" con el sub-inventario "sub-a" (Bodega A), su localizador "loc-a" (A-01),
// la categoría "cat-a" y el producto "prod-1" (Tornillo, stock 10).
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now().UTC()
	subA, catA := "sub-a", "cat-a"
	require.NoError(t, s.Organizations().Create(ctx, &entity.Organization{ID: "org", Name: "ACME", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.SubInventories().Create(ctx, &entity.SubInventory{ID: subA, OrganizationID: "org", Name: "Bodega A", CreatedAt: now}))
	require.NoError(t, s.Locators().Create(ctx, &entity.Locator{ID: "loc-a", SubInventoryID: subA, Code: "A-01", CreatedAt: now}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: catA, Name: "Ferretería", SubInventoryID: &subA, CreatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "prod-1", Name: "Tornillo", Price: decimal.RequireFromString("2.50"), Stock: 10,
		CategoryID: &catA, CreatedAt: now, UpdatedAt: now,
	}))
	return s
}

func ptr[T any](v T) *T { return &v }
