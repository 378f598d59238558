package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/memory"
)

// fixture organización con dos sub-inventarios (A y B), un localizador y una categoría en cada
// uno, y un producto "Tornillo" con stock 10 en la categoría A.
type fixture struct {
	store          *memory.Store
	locA, locB     string
	catA, catB     string
	product        string
	worker, keeper *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now().UTC()
	f := &fixture{
		store: s, locA: "loc-a", locB: "loc-b", catA: "cat-a", catB: "cat-b", product: "prod-1",
		worker: &entity.User{ID: "user-worker", Privileges: entity.PrivilegeWorker},
		keeper: &entity.User{ID: "user-keeper", Privileges: entity.PrivilegeStockKeeper},
	}
	require.NoError(t, s.Organizations().Create(ctx, &entity.Organization{ID: "org", Name: "ACME", CreatedAt: now}))
	require.NoError(t, s.SubInventories().Create(ctx, &entity.SubInventory{ID: "sub-a", OrganizationID: "org", Name: "Bodega A", CreatedAt: now}))
	require.NoError(t, s.SubInventories().Create(ctx, &entity.SubInventory{ID: "sub-b", OrganizationID: "org", Name: "Bodega B", CreatedAt: now}))
	require.NoError(t, s.Locators().Create(ctx, &entity.Locator{ID: f.locA, SubInventoryID: "sub-a", Code: "A-01", CreatedAt: now}))
	require.NoError(t, s.Locators().Create(ctx, &entity.Locator{ID: f.locB, SubInventoryID: "sub-b", Code: "B-01", CreatedAt: now}))
	subA, subB := "sub-a", "sub-b"
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: f.catA, Name: "Ferretería A", SubInventoryID: &subA, CreatedAt: now}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: f.catB, Name: "Ferretería B", SubInventoryID: &subB, CreatedAt: now}))
	catA := f.catA
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: f.product, Name: "Tornillo", Description: "M6", Price: decimal.RequireFromString("2.50"),
		Stock: 10, CategoryID: &catA, CreatedAt: now, UpdatedAt: now,
	}))
	return f
}

func (f *fixture) addProduct(t *testing.T, id, name string, stock int, categoryID *string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: decimal.NewFromInt(1), Stock: stock, CategoryID: categoryID, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p, "producto %s", id)
	return p.Stock
}
