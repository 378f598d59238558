package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.write(func(d *state) error {
		for _, existing := range d.users {
			if sameEmail(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *state) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *state) {
		for _, u := range d.users {
			if sameEmail(u.Email, email) {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	r.s.read(func(d *state) {
		for _, u := range d.users {
			u := u
			list = append(list, &u)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	return r.s.write(func(d *state) error {
		u, ok := d.users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.PasswordHash = passwordHash
		d.users[userID] = u
		return nil
	})
}

func (r *UserRepo) CountAdmins(_ context.Context) (int, error) {
	n := 0
	r.s.read(func(d *state) {
		for _, u := range d.users {
			if u.Privileges == entity.PrivilegeAdmin {
				n++
			}
		}
	})
	return n, nil
}
