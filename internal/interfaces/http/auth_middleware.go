package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/pkg/jwt"
)

// Locals keys para los datos del token en Fiber.
const (
	LocalUserID     = "user_id"
	LocalEmail      = "email"
	LocalPrivileges = "privileges"
)

// Nombres de las cookies de sesión.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// AuthMiddleware valida el token de acceso (Bearer o cookie access_token) y carga sus claims en c.Locals.
// Un token de refresco no sirve como token de acceso.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		} else {
			tokenString = c.Cookies(AccessCookie)
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token de acceso requerido"})
		}
		claims, err := jwt.Parse(jwtSecret, jwt.TokenTypeAccess, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalPrivileges, claims.Privileges)
		return c.Next()
	}
}

// RequirePrivileges permite el paso solo a los niveles indicados. Va después de AuthMiddleware.
func RequirePrivileges(allowed ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrivileges(c)
		if p == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_PRIVILEGES", Message: "el token no incluye privilegios"})
		}
		for _, a := range allowed {
			if p == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "privilegios insuficientes"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetPrivileges devuelve el nivel de privilegios del token; 0 si no hay.
func GetPrivileges(c *fiber.Ctx) int {
	p, _ := c.Locals(LocalPrivileges).(int)
	return p
}

// currentUser actor de la petición con los datos del token.
func currentUser(c *fiber.Ctx) *entity.User {
	email, _ := c.Locals(LocalEmail).(string)
	return &entity.User{ID: GetUserID(c), Email: email, Privileges: GetPrivileges(c)}
}
