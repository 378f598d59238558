//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-management-api/pkg/config"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Suite con PostgreSQL real en Docker (go test -tags integration ./...)
// ──────────────────────────────────────────────────────────────────────────────

type PostgresSuite struct {
	suite.Suite
	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
	pool       *pgxpool.Pool
	tx         *postgres.TxRunner
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	dp, err := dockertest.NewPool("")
	s.Require().NoError(err, "no se pudo conectar a Docker")
	s.dockerPool = dp

	res, err := dp.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        []string{"POSTGRES_USER=test", "POSTGRES_PASSWORD=test", "POSTGRES_DB=inventory_test"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err)
	s.resource = res

	port, _ := strconv.Atoi(res.GetPort("5432/tcp"))
	cfg := config.DBConfig{Host: "localhost", Port: port, User: "test", Password: "test", DBName: "inventory_test", SSLMode: "disable", MaxConns: 5}

	s.Require().NoError(dp.Retry(func() error {
		pool, err := postgres.NewPool(context.Background(), cfg)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}))

	m, err := postgres.NewMigrator(cfg.ConnectionString(), logger.Nop())
	s.Require().NoError(err)
	s.Require().NoError(m.Up())
	s.Require().NoError(m.Close())

	s.tx = postgres.NewTxRunner(s.pool)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.resource != nil {
		_ = s.dockerPool.Purge(s.resource)
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE stock_transfers, order_items, orders, customers, products, categories, locators, sub_inventories, organizations, users CASCADE`)
	s.Require().NoError(err)
}

type fixture struct {
	user     *entity.User
	src, dst *entity.Locator
	sub      *entity.SubInventory
	category *entity.Category
	product  *entity.Product
}

func (s *PostgresSuite) seed() fixture {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	repos := postgres.NewTxRepos(s.pool)

	user := &entity.User{ID: uuid.NewString(), Email: "admin@test.com", Username: "admin", PasswordHash: "x", Privileges: entity.PrivilegeAdmin, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(postgres.NewUserRepository(s.pool).Create(ctx, user))

	org := &entity.Organization{ID: uuid.NewString(), Name: "ACME", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(postgres.NewOrganizationRepository(s.pool).Create(ctx, org))

	sub := &entity.SubInventory{ID: uuid.NewString(), OrganizationID: org.ID, Name: "Bodega", Type: "raw", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(repos.SubInventories.Create(ctx, sub))

	src := &entity.Locator{ID: uuid.NewString(), SubInventoryID: sub.ID, Code: "A-1", CreatedAt: now, UpdatedAt: now}
	dst := &entity.Locator{ID: uuid.NewString(), SubInventoryID: sub.ID, Code: "B-1", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(repos.Locators.Create(ctx, src))
	s.Require().NoError(repos.Locators.Create(ctx, dst))

	cat := &entity.Category{ID: uuid.NewString(), Name: "Tornillería", SubInventoryID: &sub.ID, LocatorID: &src.ID, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(repos.Categories.Create(ctx, cat))

	p := &entity.Product{ID: uuid.NewString(), Name: "Tornillo", Price: decimal.RequireFromString("1.50"), Stock: 10, CategoryID: &cat.ID, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(repos.Products.Create(ctx, p))

	return fixture{user: user, src: src, dst: dst, sub: sub, category: cat, product: p}
}

func (s *PostgresSuite) TestCategoria_NombreDuplicado() {
	f := s.seed()
	now := time.Now()
	dup := &entity.Category{ID: uuid.NewString(), Name: f.category.Name, CreatedAt: now, UpdatedAt: now}
	err := postgres.NewCategoryRepository(s.pool).Create(context.Background(), dup)
	s.Require().ErrorIs(err, domain.ErrDuplicate)
}

func (s *PostgresSuite) TestProducto_StockNegativoRechazado() {
	f := s.seed()
	err := postgres.NewProductRepository(s.pool).UpdateStock(context.Background(), f.product.ID, -1)
	s.Require().ErrorIs(err, domain.ErrInsufficientStock)
}

func (s *PostgresSuite) TestTransferencias_FiltrosYCancelacionPorLocalizador() {
	ctx := context.Background()
	f := s.seed()
	repo := postgres.NewStockTransferRepository(s.pool)

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	for i, st := range []string{entity.TransferStatusPending, entity.TransferStatusProcessing, entity.TransferStatusCompleted} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(repo.Create(ctx, &entity.StockTransfer{
			ID: uuid.NewString(), ProductID: f.product.ID, SourceLocatorID: &f.src.ID, DestinationLocatorID: &f.dst.ID,
			Quantity: 1, Status: st, Notes: fmt.Sprintf("n%d", i), CreatedBy: &f.user.ID,
			SourceProductName: f.product.Name, CreatedAt: at, UpdatedAt: at,
		}))
	}

	all, err := repo.List(ctx, repository.TransferFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(entity.TransferStatusCompleted, all[0].Status, "más reciente primero")

	completed, err := repo.List(ctx, repository.TransferFilter{Status: entity.TransferStatusCompleted})
	s.Require().NoError(err)
	s.Len(completed, 1)

	n, err := repo.CancelOpenByLocators(ctx, []string{f.dst.ID}, " | cancelada", time.Now())
	s.Require().NoError(err)
	s.EqualValues(2, n, "solo pending y processing")

	cancelled, err := repo.List(ctx, repository.TransferFilter{Status: entity.TransferStatusCancelled, Ascending: true})
	s.Require().NoError(err)
	s.Require().Len(cancelled, 2)
	s.Equal("n0 | cancelada", cancelled[0].Notes)
}

func (s *PostgresSuite) TestEliminarSubInventario_CascadaYSetNull() {
	ctx := context.Background()
	f := s.seed()
	repos := postgres.NewTxRepos(s.pool)

	s.Require().NoError(repos.SubInventories.Delete(ctx, f.sub.ID))

	loc, err := repos.Locators.GetByID(ctx, f.src.ID)
	s.Require().NoError(err)
	s.Nil(loc, "los localizadores caen por CASCADE")

	cat, err := repos.Categories.GetByID(ctx, f.category.ID)
	s.Require().NoError(err)
	s.Require().NotNil(cat)
	s.Nil(cat.SubInventoryID)
	s.Nil(cat.LocatorID)
}

func (s *PostgresSuite) TestOrden_CreaConLineasYLista() {
	ctx := context.Background()
	f := s.seed()
	now := time.Now().UTC()
	o := &entity.Order{
		ID: uuid.NewString(), UserID: f.user.ID, Type: entity.OrderTypeSell, Status: entity.OrderStatusPending,
		Items:     []entity.OrderItem{{ID: uuid.NewString(), ProductID: &f.product.ID, Quantity: 2, Price: decimal.RequireFromString("1.50")}},
		CreatedAt: now, UpdatedAt: now,
	}
	o.CalculateTotal()

	s.Require().NoError(s.tx.Run(ctx, func(r ports.TxRepos) error { return r.Orders.Create(ctx, o) }))

	got, err := postgres.NewOrderRepository(s.pool).List(ctx, repository.OrderFilter{UserID: &f.user.ID})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Require().Len(got[0].Items, 1)
	s.True(decimal.RequireFromString("3").Equal(got[0].Total))
}

func (s *PostgresSuite) TestTxRunner_RollbackAnteError() {
	ctx := context.Background()
	f := s.seed()
	boom := errors.New("boom")

	err := s.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, f.product.ID)
		if err != nil {
			return err
		}
		if err := r.Products.UpdateStock(ctx, p.ID, 0); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(s.T(), err, boom)

	p, err := postgres.NewProductRepository(s.pool).GetByID(ctx, f.product.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), 10, p.Stock, "el rollback deja el stock original")
}
