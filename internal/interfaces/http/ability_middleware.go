package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
)

// LocalAbility key del RuleSet resuelto en c.Locals.
const LocalAbility = "ability"

// abilityResolver contrato mínimo del middleware; lo implementa *authz.AbilityUseCase.
type abilityResolver interface {
	ResolveAbility(ctx context.Context, userID int64) (ability.RuleSet, error)
}

// LoadAbility resuelve el RuleSet del usuario (o del invitado) una vez por petición.
// Debe usarse DESPUÉS de OptionalAuth.
func LoadAbility(resolver abilityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rs, err := resolver.ResolveAbility(c.Context(), GetUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalAbility, rs)
		return c.Next()
	}
}

// RequireAbility exige que el RuleSet permita action sobre subject.
//   - 401 si el llamador es invitado (podría autenticarse).
//   - 403 si el usuario autenticado no tiene la regla.
func RequireAbility(action ability.Action, subject ability.Subject) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rs := GetAbility(c)
		if rs.Can(action, subject) {
			return c.Next()
		}
		return deny(c, rs, action, subject, "")
	}
}

// GetAbility devuelve el RuleSet cargado por LoadAbility; sin él, el de invitado.
func GetAbility(c *fiber.Ctx) ability.RuleSet {
	if rs, ok := c.Locals(LocalAbility).(ability.RuleSet); ok {
		return rs
	}
	return ability.GuestRuleSet()
}

func deny(c *fiber.Ctx, rs ability.RuleSet, action ability.Action, subject ability.Subject, field string) error {
	target := subject.String()
	if field != "" {
		target += "." + field
	}
	if rs.IsGuest() && GetUserID(c) <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "inicie sesión para " + action.String() + " " + target,
		})
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code: "FORBIDDEN", Message: "sin permiso para " + action.String() + " " + target,
	})
}
