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
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.SubInventoryRepository = (*SubInventoryRepo)(nil)
	_ repository.LocatorRepository      = (*LocatorRepo)(nil)
)

// OrganizationRepo repositorio de organizaciones en memoria.
type OrganizationRepo struct{ s *Store }

// Organizations repositorio de organizaciones.
func (s *Store) Organizations() *OrganizationRepo { return &OrganizationRepo{s: s} }

func copyOrg(o entity.Organization) *entity.Organization {
	if o.StartDate != nil {
		t := *o.StartDate
		o.StartDate = &t
	}
	return &o
}

func (r *OrganizationRepo) Create(_ context.Context, o *entity.Organization) error {
	return r.s.write(func(d *state) error {
		d.organizations[o.ID] = *copyOrg(*o)
		return nil
	})
}

func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	var out *entity.Organization
	r.s.read(func(d *state) {
		if o, ok := d.organizations[id]; ok {
			out = copyOrg(o)
		}
	})
	return out, nil
}

func (r *OrganizationRepo) GetFirst(ctx context.Context) (*entity.Organization, error) {
	list, _ := r.List(ctx)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *OrganizationRepo) List(_ context.Context) ([]*entity.Organization, error) {
	var list []*entity.Organization
	r.s.read(func(d *state) {
		for _, o := range d.organizations {
			list = append(list, copyOrg(o))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *OrganizationRepo) Update(_ context.Context, o *entity.Organization) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.organizations[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		upd := *copyOrg(*o)
		upd.CreatedAt = cur.CreatedAt
		d.organizations[o.ID] = upd
		return nil
	})
}

// ── Sub-inventarios ───────────────────────────────────────────────────────────

// SubInventoryRepo repositorio de sub-inventarios en memoria.
type SubInventoryRepo struct{ s *Store }

// SubInventories repositorio de sub-inventarios.
func (s *Store) SubInventories() *SubInventoryRepo { return &SubInventoryRepo{s: s} }

func (r *SubInventoryRepo) Create(_ context.Context, sub *entity.SubInventory) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.organizations[sub.OrganizationID]; !ok {
			return fmt.Errorf("%w: la organización no existe", domain.ErrNotFound)
		}
		d.subInventories[sub.ID] = *sub
		return nil
	})
}

func (r *SubInventoryRepo) GetByID(_ context.Context, id string) (*entity.SubInventory, error) {
	var out *entity.SubInventory
	r.s.read(func(d *state) {
		if sub, ok := d.subInventories[id]; ok {
			out = &sub
		}
	})
	return out, nil
}

func (r *SubInventoryRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.SubInventory, error) {
	var list []*entity.SubInventory
	r.s.read(func(d *state) {
		for _, sub := range d.subInventories {
			if sub.OrganizationID == organizationID {
				sub := sub
				list = append(list, &sub)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *SubInventoryRepo) Update(_ context.Context, sub *entity.SubInventory) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.subInventories[sub.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = sub.Name
		cur.Type = sub.Type
		cur.UpdatedAt = sub.UpdatedAt
		d.subInventories[sub.ID] = cur
		return nil
	})
}

// Delete elimina el sub-inventario y sus localizadores (CASCADE).
func (r *SubInventoryRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.subInventories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.subInventories, id)
		for lid, l := range d.locators {
			if l.SubInventoryID == id {
				deleteLocator(d, lid)
			}
		}
		for cid, c := range d.categories {
			if eqStr(c.SubInventoryID, id) {
				c.SubInventoryID = nil
				d.categories[cid] = c
			}
		}
		return nil
	})
}

// ── Localizadores ─────────────────────────────────────────────────────────────

// LocatorRepo repositorio de localizadores en memoria.
type LocatorRepo struct{ s *Store }

// Locators repositorio de localizadores.
func (s *Store) Locators() *LocatorRepo { return &LocatorRepo{s: s} }

func copyLocator(l entity.Locator) *entity.Locator {
	l.Length = cloneFloat(l.Length)
	l.Width = cloneFloat(l.Width)
	l.Height = cloneFloat(l.Height)
	return &l
}

func (r *LocatorRepo) Create(_ context.Context, l *entity.Locator) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.subInventories[l.SubInventoryID]; !ok {
			return fmt.Errorf("%w: el sub-inventario no existe", domain.ErrNotFound)
		}
		d.locators[l.ID] = *copyLocator(*l)
		return nil
	})
}

func (r *LocatorRepo) GetByID(_ context.Context, id string) (*entity.Locator, error) {
	var out *entity.Locator
	r.s.read(func(d *state) {
		if l, ok := d.locators[id]; ok {
			out = copyLocator(l)
		}
	})
	return out, nil
}

func (r *LocatorRepo) ListBySubInventory(_ context.Context, subInventoryID string) ([]*entity.Locator, error) {
	var list []*entity.Locator
	r.s.read(func(d *state) {
		for _, l := range d.locators {
			if l.SubInventoryID == subInventoryID {
				list = append(list, copyLocator(l))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *LocatorRepo) Update(_ context.Context, l *entity.Locator) error {
	return r.s.write(func(d *state) error {
		cur, ok := d.locators[l.ID]
		if !ok {
			return domain.ErrNotFound
		}
		upd := *copyLocator(*l)
		upd.SubInventoryID = cur.SubInventoryID
		upd.CreatedAt = cur.CreatedAt
		d.locators[l.ID] = upd
		return nil
	})
}

func (r *LocatorRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *state) error {
		if _, ok := d.locators[id]; !ok {
			return domain.ErrNotFound
		}
		deleteLocator(d, id)
		return nil
	})
}

// deleteLocator borra el localizador y pone en NULL sus referencias.
func deleteLocator(d *state, id string) {
	delete(d.locators, id)
	for cid, c := range d.categories {
		if eqStr(c.LocatorID, id) {
			c.LocatorID = nil
			d.categories[cid] = c
		}
	}
	for tid, t := range d.transfers {
		if eqStr(t.SourceLocatorID, id) {
			t.SourceLocatorID = nil
		}
		if eqStr(t.DestinationLocatorID, id) {
			t.DestinationLocatorID = nil
		}
		d.transfers[tid] = t
	}
}
