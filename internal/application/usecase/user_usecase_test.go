package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/auth"
	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/memory"
)

func TestUserChangePassword(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{
		Secret: "a", RefreshSecret: "b", Issuer: "test", AccessTTL: time.Minute, RefreshTTL: time.Hour,
	})
	u, err := authUC.Signup(ctx, dto.SignupRequest{Email: "w@test.com", Username: "w", Password: "password123"})
	require.NoError(t, err)
	uc := usecase.NewUserUseCase(s.Users())

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "nueva-clave-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "nueva-clave-1"}))
	_, err = authUC.Login(ctx, dto.LoginRequest{Email: "w@test.com", Password: "nueva-clave-1"})
	assert.NoError(t, err)

	err = uc.ChangePassword(ctx, "no-existe", dto.ChangePasswordRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserListYMe(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: "a", RefreshSecret: "b", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	u, err := authUC.Signup(ctx, dto.SignupRequest{Email: "w@test.com", Username: "w", Password: "password123"})
	require.NoError(t, err)
	uc := usecase.NewUserUseCase(s.Users())

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "w@test.com", me.Email)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
