package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// fakeGenerator cuenta llamadas y guarda el último reporte recibido.
type fakeGenerator struct {
	calls     int
	lastOrder reports.OrderReport
}

func (g *fakeGenerator) OrderPDF(_ context.Context, r reports.OrderReport) ([]byte, error) {
	g.calls++
	g.lastOrder = r
	return []byte("%PDF-order-" + r.Order.ID), nil
}

func (g *fakeGenerator) TransferPDF(_ context.Context, r reports.TransferReport) ([]byte, error) {
	g.calls++
	return []byte("%PDF-transfer-" + r.Transfer.ID), nil
}

// mapCache caché en memoria; failing simula Redis caído.
type mapCache struct {
	data    map[string][]byte
	failing bool
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.failing {
		return nil, false, errors.New("redis caído")
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte) error {
	if c.failing {
		return errors.New("redis caído")
	}
	c.data[key] = data
	return nil
}

type env struct {
	store  *memory.Store
	orders *inventory.OrderUseCase
	uc     *reports.UseCase
	gen    *fakeGenerator
	cache  *mapCache
	owner  *entity.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	now := time.Now().UTC()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: "p1", Name: "Tornillo", Price: decimal.NewFromInt(2), Stock: 10, CreatedAt: now, UpdatedAt: now,
	}))
	e := &env{
		store: s,
		gen:   &fakeGenerator{},
		cache: &mapCache{data: map[string][]byte{}},
		owner: &entity.User{ID: "u1", Privileges: entity.PrivilegeStockKeeper},
	}
	e.orders = inventory.NewOrderUseCase(s.Repos(), s.TxRunner(), logger.Nop())
	transfers := inventory.NewTransferUseCase(s.Repos(), s.TxRunner(), logger.Nop())
	e.uc = reports.NewUseCase(e.orders, transfers, s.Repos(), e.gen, e.cache, logger.Nop())
	return e
}

func (e *env) createOrder(t *testing.T, customerID *string) *dto.OrderResponse {
	t.Helper()
	o, err := e.orders.Create(context.Background(), e.owner, dto.CreateOrderRequest{
		Type:       entity.OrderTypeSell,
		CustomerID: customerID,
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Order
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderReport_UsaCacheHastaQueCambieLaOrden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.createOrder(t, nil)

	first, err := e.uc.Order(ctx, e.owner, o.ID)
	require.NoError(t, err)
	second, err := e.uc.Order(ctx, e.owner, o.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.gen.calls, "la segunda lectura sale de la caché")

	time.Sleep(time.Millisecond)
	_, err = e.orders.UpdateStatus(ctx, e.owner, o.ID, entity.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = e.uc.Order(ctx, e.owner, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, e.gen.calls, "un cambio de updated_at invalida la entrada")
	assert.Len(t, e.cache.data, 2)
}

func TestOrderReport_LineasYCliente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.Customers().Create(ctx, &entity.Customer{ID: "c1", Name: "Ferretería Sur", Email: "sur@test.com"}))
	o := e.createOrder(t, strPtr("c1"))

	_, err := e.uc.Order(ctx, e.owner, o.ID)
	require.NoError(t, err)
	rep := e.gen.lastOrder
	require.NotNil(t, rep.Customer)
	assert.Equal(t, "Ferretería Sur", rep.Customer.Name)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, "Tornillo", rep.Lines[0].ProductName)
	assert.True(t, decimal.NewFromInt(4).Equal(rep.Lines[0].LineTotal))
}

func TestOrderReport_VisibilidadYCacheCaida(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.createOrder(t, nil)

	other := &entity.User{ID: "u2", Privileges: entity.PrivilegeStockKeeper}
	_, err := e.uc.Order(ctx, other, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	e.cache.failing = true
	data, err := e.uc.Order(ctx, e.owner, o.ID)
	require.NoError(t, err, "sin caché el reporte se genera igual")
	assert.NotEmpty(t, data)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferReport_NoEncontrada(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Transfer(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, e.gen.calls)
}

func TestCacheKey(t *testing.T) {
	ts := time.Unix(0, 1700000000123456789)
	assert.Equal(t, "report:order:o1:1700000000123456789", reports.CacheKey("order", "o1", ts))
}

func strPtr(s string) *string { return &s }
