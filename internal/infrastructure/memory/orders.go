package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo repositorio de órdenes en memoria.
type OrderRepo struct{ s *Store }

// Orders repositorio de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.s.write(func(d *state) error {
		for _, it := range o.Items {
			if it.ProductID != nil {
				if _, ok := d.products[*it.ProductID]; !ok {
					return fmt.Errorf("%w: producto de la línea no existe", domain.ErrNotFound)
				}
			}
		}
		stored := cloneOrder(*o)
		for i := range stored.Items {
			stored.Items[i].OrderID = o.ID
		}
		d.orders[o.ID] = stored
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.s.read(func(d *state) {
		if o, ok := d.orders[id]; ok {
			c := cloneOrder(o)
			out = &c
		}
	})
	return out, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	list := []*entity.Order{}
	r.s.read(func(d *state) {
		for _, o := range d.orders {
			if filter.UserID != nil && o.UserID != *filter.UserID {
				continue
			}
			c := cloneOrder(o)
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.s.write(func(d *state) error {
		o, ok := d.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = updatedAt
		d.orders[id] = o
		return nil
	})
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.orders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.orders, id)
		return nil
	})
}
