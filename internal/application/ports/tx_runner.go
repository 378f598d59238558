package ports

import (
	"context"

	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products       repository.ProductRepository
	Categories     repository.CategoryRepository
	Customers      repository.CustomerRepository
	Orders         repository.OrderRepository
	Transfers      repository.StockTransferRepository
	SubInventories repository.SubInventoryRepository
	Locators       repository.LocatorRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback y ningún cambio queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
