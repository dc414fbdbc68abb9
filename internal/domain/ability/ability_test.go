package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

func perm(subject, action, field string, canAccess bool) entity.Permission {
	return entity.Permission{Subject: subject, Action: action, FieldName: field, CanAccess: canAccess}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compilación
// ──────────────────────────────────────────────────────────────────────────────

func TestCompile_ManageAllPermiteTodo(t *testing.T) {
	rs, issues := ability.Compile([]entity.Permission{perm("ALL", "MANAGE", "", true)})
	require.Empty(t, issues)
	require.Equal(t, 1, rs.Len())
	assert.True(t, rs.Rules()[0].IsUniversal())

	assert.True(t, rs.Can(ability.ActionDelete, ability.SubjectUser))
	assert.True(t, rs.Can(ability.ActionRead, ability.SubjectReports))
	assert.True(t, rs.Can(ability.ActionUpdate, ability.SubjectItem, "serial"))
	assert.True(t, rs.Can(ability.ActionManage, ability.SubjectAll))
}

func TestCompile_TokensEnMinusculasYEspacios(t *testing.T) {
	rs, issues := ability.Compile([]entity.Permission{perm("  items ", "read", "", true)})
	require.Empty(t, issues)
	assert.True(t, rs.Can(ability.ActionRead, ability.SubjectItem))
}

func TestCompile_CanAccessFalseSeDescarta(t *testing.T) {
	rs, issues := ability.Compile([]entity.Permission{
		perm("ITEMS", "DELETE", "", false),
		perm("ITEMS", "READ", "", true),
	})
	require.Empty(t, issues)
	assert.Equal(t, 1, rs.Len(), "la denegación no se convierte en regla")
	assert.False(t, rs.Can(ability.ActionDelete, ability.SubjectItem))
	assert.True(t, rs.Can(ability.ActionRead, ability.SubjectItem))
}

func TestCompile_ManageAllDenegadoNoConcedeNada(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("ALL", "MANAGE", "", false)})
	assert.Equal(t, 0, rs.Len())
	assert.False(t, rs.Can(ability.ActionRead, ability.SubjectItem))
}

func TestCompile_TokensDesconocidosGeneranIssues(t *testing.T) {
	rs, issues := ability.Compile([]entity.Permission{
		perm("PATIENTS", "READ", "", true),
		perm("ITEMS", "APPROVE", "", true),
		perm("FLOORS", "CREATE", "", true),
	})
	require.Len(t, issues, 2)
	assert.Equal(t, "PATIENTS", issues[0].Row.Subject)
	assert.Contains(t, issues[0].Error(), "sujeto desconocido")
	assert.Contains(t, issues[1].Error(), "acción desconocida")
	assert.Equal(t, 1, rs.Len())
	assert.True(t, rs.Can(ability.ActionCreate, ability.SubjectFloor))
}

func TestCompile_ManageSobreSujetoConcreto(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("DEPARTMENTS", "MANAGE", "", true)})
	assert.True(t, rs.Can(ability.ActionCreate, ability.SubjectDepartment))
	assert.True(t, rs.Can(ability.ActionDelete, ability.SubjectDepartment))
	assert.False(t, rs.Can(ability.ActionRead, ability.SubjectItem))
}

func TestCompile_AllConAccionConcreta(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("ALL", "READ", "", true)})
	assert.True(t, rs.Can(ability.ActionRead, ability.SubjectStatistics))
	assert.False(t, rs.Can(ability.ActionUpdate, ability.SubjectItem))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas limitadas a campo
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_ReglaConCampo(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("ITEMS", "UPDATE", "situation", true)})

	assert.True(t, rs.Can(ability.ActionUpdate, ability.SubjectItem, "situation"))
	assert.False(t, rs.Can(ability.ActionUpdate, ability.SubjectItem, "serial"),
		"un campo distinto no se satisface")
	assert.True(t, rs.Can(ability.ActionUpdate, ability.SubjectItem),
		"la consulta sin campo se satisface con una regla de campo")
}

func TestCan_ReglaSinCampoSatisfaceConsultaConCampo(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("ITEMS", "UPDATE", "", true)})
	assert.True(t, rs.Can(ability.ActionUpdate, ability.SubjectItem, "serial"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitado
// ──────────────────────────────────────────────────────────────────────────────

func TestGuestRuleSet_SoloLeerItems(t *testing.T) {
	rs := ability.GuestRuleSet()
	assert.True(t, rs.IsGuest())
	assert.True(t, rs.Can(ability.ActionRead, ability.SubjectItem))
	assert.False(t, rs.Can(ability.ActionCreate, ability.SubjectItem))
	assert.False(t, rs.Can(ability.ActionRead, ability.SubjectUser))
	assert.False(t, rs.Can(ability.ActionManage, ability.SubjectAll))
}

func TestOrGuest_ConjuntoVacioCaeEnInvitado(t *testing.T) {
	empty, _ := ability.Compile(nil)
	assert.True(t, ability.OrGuest(empty).IsGuest())

	allDenied, _ := ability.Compile([]entity.Permission{
		perm("ITEMS", "READ", "", false),
		perm("USERS", "MANAGE", "", false),
	})
	rs := ability.OrGuest(allDenied)
	assert.True(t, rs.IsGuest())
	assert.True(t, ability.Can(rs, ability.ActionRead, ability.SubjectItem))
	assert.False(t, ability.Can(rs, ability.ActionManage, ability.SubjectUser))
}

func TestRules_DevuelveCopia(t *testing.T) {
	rs, _ := ability.Compile([]entity.Permission{perm("ITEMS", "READ", "", true)})
	rules := rs.Rules()
	rules[0].Action = ability.ActionManage
	assert.False(t, rs.Can(ability.ActionDelete, ability.SubjectItem), "el conjunto compilado es inmutable")
}

func TestParseTokens(t *testing.T) {
	s, ok := ability.ParseSubject("statistic")
	require.True(t, ok)
	assert.Equal(t, "Statistics", s.String())

	_, ok = ability.ParseSubject("WARDS")
	assert.False(t, ok)

	a, ok := ability.ParseAction(" Delete ")
	require.True(t, ok)
	assert.Equal(t, "delete", a.String())
}
