package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func copyProduct(p entity.Product) *entity.Product {
	p.CategoryID = cloneStr(p.CategoryID)
	return &p
}

func checkProduct(d *state, p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := d.categories[*p.CategoryID]; !ok {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrNotFound)
		}
	}
	if p.Stock < 0 || p.Price.IsNegative() {
		return fmt.Errorf("%w: precio y stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.write(func(d *state) error {
		if err := checkProduct(d, p); err != nil {
			return err
		}
		d.products[p.ID] = *copyProduct(*p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(func(d *state) {
		if p, ok := d.products[id]; ok {
			out = copyProduct(p)
		}
	})
	return out, nil
}

// GetForUpdate igual a GetByID; el bloqueo lo da TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByNameAndCategory(_ context.Context, name, categoryID string) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(func(d *state) {
		for _, p := range sortedProducts(d) {
			if p.Name == name && eqStr(p.CategoryID, categoryID) {
				out = copyProduct(*p)
				return
			}
		}
	})
	return out, nil
}

func sortedProducts(d *state) []*entity.Product {
	list := make([]*entity.Product, 0, len(d.products))
	for _, p := range d.products {
		list = append(list, copyProduct(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	r.s.read(func(d *state) { list = sortedProducts(d) })
	return list, nil
}

func (r *ProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Product, error) {
	var list []*entity.Product
	r.s.read(func(d *state) {
		for _, p := range sortedProducts(d) {
			if eqStr(p.CategoryID, categoryID) {
				list = append(list, p)
			}
		}
	})
	return list, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkProduct(d, p); err != nil {
			return err
		}
		upd := *copyProduct(*p)
		upd.CreatedAt = cur.CreatedAt
		d.products[p.ID] = upd
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, productID string, stock int) error {
	return r.s.write(func(d *state) error {
		p, ok := d.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			return fmt.Errorf("%w: el stock no puede quedar negativo", domain.ErrInsufficientStock)
		}
		p.Stock = stock
		d.products[productID] = p
		return nil
	})
}

// Delete elimina el producto, sus transferencias (CASCADE) y desliga las líneas de orden.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.products, id)
		for tid, t := range d.transfers {
			if t.ProductID == id {
				delete(d.transfers, tid)
			}
		}
		for oid, o := range d.orders {
			for i := range o.Items {
				if eqStr(o.Items[i].ProductID, id) {
					o.Items[i].ProductID = nil
				}
			}
			d.orders[oid] = o
		}
		return nil
	})
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct{ s *Store }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

func copyCategory(c entity.Category) *entity.Category {
	c.SubInventoryID = cloneStr(c.SubInventoryID)
	c.LocatorID = cloneStr(c.LocatorID)
	return &c
}

func nameTaken(d *state, name, exceptID string) bool {
	for _, c := range d.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.write(func(d *state) error {
		if nameTaken(d, c.Name, c.ID) {
			return fmt.Errorf("%w: ya existe una categoría llamada '%s'", domain.ErrDuplicate, c.Name)
		}
		d.categories[c.ID] = *copyCategory(*c)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.s.read(func(d *state) {
		if c, ok := d.categories[id]; ok {
			out = copyCategory(c)
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.s.read(func(d *state) {
		for _, c := range d.categories {
			if c.Name == name {
				out = copyCategory(c)
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	r.s.read(func(d *state) {
		for _, c := range d.categories {
			list = append(list, copyCategory(c))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if nameTaken(d, c.Name, c.ID) {
			return fmt.Errorf("%w: ya existe una categoría llamada '%s'", domain.ErrDuplicate, c.Name)
		}
		upd := *copyCategory(*c)
		upd.CreatedAt = cur.CreatedAt
		d.categories[c.ID] = upd
		return nil
	})
}

// Delete elimina la categoría; productos y transferencias quedan sin ella (SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.categories, id)
		for pid, p := range d.products {
			if eqStr(p.CategoryID, id) {
				p.CategoryID = nil
				d.products[pid] = p
			}
		}
		for tid, t := range d.transfers {
			if eqStr(t.SourceCategoryID, id) {
				t.SourceCategoryID = nil
			}
			if eqStr(t.DestinationCategoryID, id) {
				t.DestinationCategoryID = nil
			}
			d.transfers[tid] = t
		}
		return nil
	})
}

func (r *CategoryRepo) ClearSubInventory(_ context.Context, subInventoryID string) error {
	return r.s.write(func(d *state) error {
		for id, c := range d.categories {
			if eqStr(c.SubInventoryID, subInventoryID) {
				c.SubInventoryID = nil
				c.LocatorID = nil
				d.categories[id] = c
			}
		}
		return nil
	})
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerRepo repositorio de clientes en memoria.
type CustomerRepo struct{ s *Store }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

func copyCustomer(c entity.Customer) *entity.Customer {
	if c.Pin != nil {
		pin := *c.Pin
		c.Pin = &pin
	}
	return &c
}

func emailTaken(d *state, email, exceptID string) bool {
	for _, c := range d.customers {
		if sameEmail(c.Email, email) && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.write(func(d *state) error {
		if emailTaken(d, c.Email, c.ID) {
			return fmt.Errorf("%w: ya existe un cliente con el email '%s'", domain.ErrDuplicate, c.Email)
		}
		d.customers[c.ID] = *copyCustomer(*c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.s.read(func(d *state) {
		if c, ok := d.customers[id]; ok {
			out = copyCustomer(c)
		}
	})
	return out, nil
}

func (r *CustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	var out *entity.Customer
	r.s.read(func(d *state) {
		for _, c := range d.customers {
			if sameEmail(c.Email, email) {
				out = copyCustomer(c)
				return
			}
		}
	})
	return out, nil
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var list []*entity.Customer
	r.s.read(func(d *state) {
		for _, c := range d.customers {
			list = append(list, copyCustomer(c))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.customers[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if emailTaken(d, c.Email, c.ID) {
			return fmt.Errorf("%w: ya existe un cliente con el email '%s'", domain.ErrDuplicate, c.Email)
		}
		upd := *copyCustomer(*c)
		upd.CreatedAt = cur.CreatedAt
		d.customers[c.ID] = upd
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.customers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.customers, id)
		for oid, o := range d.orders {
			if eqStr(o.CustomerID, id) {
				o.CustomerID = nil
				d.orders[oid] = o
			}
		}
		return nil
	})
}
