// Package authz resuelve el conjunto de reglas de un usuario a partir de las filas
// de permisos de su rol.
package authz

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// GuestUserID identificador reservado de la identidad invitada (sin token).
const GuestUserID int64 = -1

// Resultados de una resolución, usados como etiqueta de métrica.
const (
	OutcomeGuest    = "guest"
	OutcomeFallback = "fallback_guest"
	OutcomeCompiled = "compiled"
	OutcomeError    = "error"
)

// Metrics contador de resoluciones por resultado.
type Metrics interface {
	AbilityResolved(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) AbilityResolved(string) {}

// AbilityUseCase compila el RuleSet de un usuario en cada petición. No guarda estado
// compartido: cada llamada construye su propio conjunto.
type AbilityUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	metrics  Metrics
	log      *logger.Logger
}

// NewAbilityUseCase construye el caso de uso. metrics puede ser nil.
func NewAbilityUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, metrics Metrics, log *logger.Logger) *AbilityUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AbilityUseCase{userRepo: userRepo, roleRepo: roleRepo, metrics: metrics, log: log.Component("authz")}
}

// ResolveAbility devuelve el RuleSet del usuario.
// Invitado, usuario inexistente o inactivo, y rol sin reglas efectivas reciben el conjunto de invitado.
// Un fallo de persistencia se devuelve como ErrInternal.
func (uc *AbilityUseCase) ResolveAbility(ctx context.Context, userID int64) (ability.RuleSet, error) {
	if userID == GuestUserID {
		uc.metrics.AbilityResolved(OutcomeGuest)
		return ability.GuestRuleSet(), nil
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.metrics.AbilityResolved(OutcomeError)
		return ability.RuleSet{}, domain.Internal("get user", err)
	}
	if user == nil || !user.IsActive {
		uc.log.Debug().Int64("user_id", userID).Msg("usuario inexistente o inactivo; se usa invitado")
		uc.metrics.AbilityResolved(OutcomeFallback)
		return ability.GuestRuleSet(), nil
	}

	rows, err := uc.roleRepo.ListPermissions(ctx, user.RoleID)
	if err != nil {
		uc.metrics.AbilityResolved(OutcomeError)
		return ability.RuleSet{}, domain.Internal("list permissions", err)
	}

	rs, issues := ability.Compile(rows)
	for _, issue := range issues {
		uc.log.Warn().
			Int64("role_id", user.RoleID).
			Str("subject", issue.Row.Subject).
			Str("action", issue.Row.Action).
			Str("reason", issue.Reason).
			Msg("permiso omitido al compilar")
	}

	if rs.Len() == 0 {
		uc.log.Info().Int64("user_id", userID).Str("role", user.RoleName).
			Msg("rol sin reglas efectivas; se usa invitado")
		uc.metrics.AbilityResolved(OutcomeFallback)
		return ability.GuestRuleSet(), nil
	}
	uc.metrics.AbilityResolved(OutcomeCompiled)
	return rs, nil
}

// Describe proyección del RuleSet para GET /api/me/ability.
func Describe(userID int64, rs ability.RuleSet) dto.AbilityResponse {
	rules := rs.Rules()
	out := dto.AbilityResponse{UserID: userID, Guest: rs.IsGuest(), Rules: make([]dto.RuleResponse, 0, len(rules))}
	for _, r := range rules {
		out.Rules = append(out.Rules, dto.RuleResponse{
			Action:  r.Action.String(),
			Subject: r.Subject.String(),
			Field:   r.Field,
		})
	}
	return out
}
