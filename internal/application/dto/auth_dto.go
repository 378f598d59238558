package dto

import "time"

// SignupRequest entrada para registro. Privileges por defecto 1 (Worker).
type SignupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required,min=1,max=100"`
	Password   string `json:"password" validate:"required"`
	Privileges *int   `json:"privileges"`
}

// LoginRequest entrada para login. IsAdmin selecciona el login de administradores.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Privileges int       `json:"privileges"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// SignupResponse salida del registro.
type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse par de tokens y usuario autenticado.
// Los tokens también se envían como cookies httponly.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

// ChangePasswordRequest entrada para cambio de contraseña del usuario actual.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}
