package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/authz"
	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/pkg/jwt"
)

// Locals keys de identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoleID = "role_id"
)

// OptionalAuth valida el Bearer Token si viene y guarda UserID y RoleID en c.Locals.
// Sin header Authorization la petición continúa como invitado (authz.GuestUserID).
// Un token presente pero inválido o expirado responde 401.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(LocalUserID, authz.GuestUserID)
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRoleID, claims.RoleID)
		return c.Next()
	}
}

// RequireUser rechaza al invitado. Usar después de OptionalAuth.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == authz.GuestUserID {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto; invitado si OptionalAuth no lo fijó.
func GetUserID(c *fiber.Ctx) int64 {
	if id, ok := c.Locals(LocalUserID).(int64); ok {
		return id
	}
	return authz.GuestUserID
}
