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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo repositorio de transferencias en memoria.
type StockTransferRepo struct{ s *Store }

// Transfers repositorio de transferencias.
func (s *Store) Transfers() *StockTransferRepo { return &StockTransferRepo{s: s} }

func (r *StockTransferRepo) Create(_ context.Context, t *entity.StockTransfer) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.products[t.ProductID]; !ok {
			return fmt.Errorf("%w: producto, localizador o categoría referenciada no existe", domain.ErrNotFound)
		}
		d.transfers[t.ID] = cloneTransfer(*t)
		return nil
	})
}

func (r *StockTransferRepo) GetByID(_ context.Context, id string) (*entity.StockTransfer, error) {
	var out *entity.StockTransfer
	r.s.read(func(d *state) {
		if t, ok := d.transfers[id]; ok {
			c := cloneTransfer(t)
			out = &c
		}
	})
	return out, nil
}

func (r *StockTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r *StockTransferRepo) List(_ context.Context, f repository.TransferFilter) ([]*entity.StockTransfer, error) {
	list := []*entity.StockTransfer{}
	r.s.read(func(d *state) {
		for _, t := range d.transfers {
			if f.Status != "" && t.Status != f.Status {
				continue
			}
			if f.ProductID != "" && t.ProductID != f.ProductID {
				continue
			}
			if f.From != nil && t.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && t.CreatedAt.After(*f.To) {
				continue
			}
			c := cloneTransfer(t)
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		if f.Ascending {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return list, nil
}

func (r *StockTransferRepo) UpdateStatus(_ context.Context, t *entity.StockTransfer) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.transfers[t.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = t.Status
		cur.Notes = t.Notes
		cur.UpdatedAt = t.UpdatedAt
		d.transfers[t.ID] = cur
		return nil
	})
}

func (r *StockTransferRepo) CancelOpenByLocators(_ context.Context, locatorIDs []string, noteSuffix string, now time.Time) (int64, error) {
	set := make(map[string]bool, len(locatorIDs))
	for _, id := range locatorIDs {
		set[id] = true
	}
	var n int64
	err := r.s.write(func(d *state) error {
		for id, t := range d.transfers {
			if t.IsFinal() {
				continue
			}
			touches := (t.SourceLocatorID != nil && set[*t.SourceLocatorID]) ||
				(t.DestinationLocatorID != nil && set[*t.DestinationLocatorID])
			if !touches {
				continue
			}
			t.Status = entity.TransferStatusCancelled
			t.Notes += noteSuffix
			t.UpdatedAt = now
			d.transfers[id] = t
			n++
		}
		return nil
	})
	return n, err
}
