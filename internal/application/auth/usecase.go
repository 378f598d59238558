package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña en registro y cambio de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair par de tokens emitido en login y refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthUseCase casos de uso de autenticación: registro, login y refresco de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup crea un usuario: valida privilegios y contraseña, hashea con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	privileges := entity.PrivilegeWorker
	if in.Privileges != nil {
		privileges = *in.Privileges
	}
	if !entity.ValidPrivilege(privileges) {
		return nil, fmt.Errorf("%w: privileges debe ser 1, 2 o 3", domain.ErrInvalidInput)
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("%w: email y username son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Privileges:   privileges,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password y el tipo de login, y emite el par de tokens.
// Los administradores (privileges 3) solo pueden entrar por el login de admin y viceversa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	isAdmin := user.Privileges == entity.PrivilegeAdmin
	if in.IsAdmin && !isAdmin {
		return nil, fmt.Errorf("%w: el usuario no es administrador", domain.ErrForbidden)
	}
	if !in.IsAdmin && isAdmin {
		return nil, fmt.Errorf("%w: los administradores deben usar el login de administrador", domain.ErrForbidden)
	}
	pair, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		User:         *ToUserResponse(user),
	}, nil
}

// Refresh valida el refresh token, recarga el usuario y emite un par nuevo.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: falta el refresh token", domain.ErrUnauthorized)
	}
	claims, err := jwt.Parse(uc.jwtCfg.RefreshSecret, jwt.TokenTypeRefresh, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token inválido", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario ya no existe", domain.ErrUnauthorized)
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*TokenPair, error) {
	sub := jwt.Subject{UserID: user.ID, Email: user.Email, Privileges: user.Privileges}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TokenTypeAccess, sub, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, uc.jwtCfg.Issuer, jwt.TokenTypeRefresh, sub, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidatePassword exige la longitud mínima.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ToUserResponse convierte la entidad a DTO sin el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Privileges: u.Privileges,
		Role:       entity.PrivilegeName(u.Privileges),
		CreatedAt:  u.CreatedAt,
	}
}
