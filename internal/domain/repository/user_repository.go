package repository

import (
	"context"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// CountAdmins usado por cmd/seed para decidir si crear el primer administrador.
	CountAdmins(ctx context.Context) (int, error)
}
