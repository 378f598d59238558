// Package memory implementa los puertos de persistencia en memoria.
// Lo usan los tests de casos de uso y de handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// state todas las tablas. Los valores se guardan por copia: nadie fuera del store comparte punteros con él.
type state struct {
	users          map[string]entity.User
	organizations  map[string]entity.Organization
	subInventories map[string]entity.SubInventory
	locators       map[string]entity.Locator
	categories     map[string]entity.Category
	products       map[string]entity.Product
	customers      map[string]entity.Customer
	orders         map[string]entity.Order
	transfers      map[string]entity.StockTransfer
}

func newState() *state {
	return &state{
		users:          map[string]entity.User{},
		organizations:  map[string]entity.Organization{},
		subInventories: map[string]entity.SubInventory{},
		locators:       map[string]entity.Locator{},
		categories:     map[string]entity.Category{},
		products:       map[string]entity.Product{},
		customers:      map[string]entity.Customer{},
		orders:         map[string]entity.Order{},
		transfers:      map[string]entity.StockTransfer{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.organizations {
		c.organizations[k] = v
	}
	for k, v := range s.subInventories {
		c.subInventories[k] = v
	}
	for k, v := range s.locators {
		c.locators[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	return c
}

// Store base de datos en memoria. Es seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex // protege data
	txMu sync.Mutex // serializa transacciones (equivalente a los row locks)
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(d *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *Store) write(fn func(d *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Repos devuelve todos los repositorios sobre el store.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Products:       s.Products(),
		Categories:     s.Categories(),
		Customers:      s.Customers(),
		Orders:         s.Orders(),
		Transfers:      s.Transfers(),
		SubInventories: s.SubInventories(),
		Locators:       s.Locators(),
	}
}

// TxRunner ejecuta fn con snapshot del estado; si fn falla se restaura el snapshot.
type TxRunner struct {
	store *Store
}

// TxRunner construye el runner transaccional del store.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{store: s}
}

// Run ver ports.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
