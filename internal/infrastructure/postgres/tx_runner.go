package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un deadlock o fallo de serialización vuelve como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// NewTxRepos construye todos los repos sobre el mismo Querier (pool o tx).
func NewTxRepos(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Products:       NewProductRepository(q),
		Categories:     NewCategoryRepository(q),
		Customers:      NewCustomerRepository(q),
		Orders:         NewOrderRepository(q),
		Transfers:      NewStockTransferRepository(q),
		SubInventories: NewSubInventoryRepository(q),
		Locators:       NewLocatorRepository(q),
	}
}
