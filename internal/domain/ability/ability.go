// Package ability compila las filas de permisos de un rol en un conjunto de reglas
// inmutable y responde consultas "¿puede <acción> sobre <sujeto> [campo]?".
//
// Solo existen reglas de permiso: una fila con CanAccess=false se descarta al compilar
// y la ausencia de regla es el único mecanismo de denegación.
//
// Política de campos: una consulta sin campo se satisface con una regla limitada a un
// campo (chequeo grueso: "puede actualizar al menos algún campo de Item"); una consulta
// con campo se satisface con una regla sin campo o con una regla del mismo campo.
package ability

import (
	"fmt"
	"strings"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// Subject recurso sobre el que aplica una regla.
type Subject int

// Vocabulario cerrado de sujetos. SubjectAll es el comodín.
const (
	SubjectUnknown Subject = iota
	SubjectAll
	SubjectUser
	SubjectItem
	SubjectCategory
	SubjectDepartment
	SubjectRank
	SubjectFloor
	SubjectStatistics
	SubjectDashboard
	SubjectReports
)

var subjectNames = map[Subject]string{
	SubjectAll:        "all",
	SubjectUser:       "User",
	SubjectItem:       "Item",
	SubjectCategory:   "Category",
	SubjectDepartment: "Department",
	SubjectRank:       "Rank",
	SubjectFloor:      "Floor",
	SubjectStatistics: "Statistics",
	SubjectDashboard:  "Dashboard",
	SubjectReports:    "Reports",
}

// subjectTokens tokens de la BD (singular y plural) → sujeto.
var subjectTokens = map[string]Subject{
	"ALL":         SubjectAll,
	"USERS":       SubjectUser,
	"USER":        SubjectUser,
	"ITEMS":       SubjectItem,
	"ITEM":        SubjectItem,
	"CATEGORIES":  SubjectCategory,
	"CATEGORY":    SubjectCategory,
	"DEPARTMENTS": SubjectDepartment,
	"DEPARTMENT":  SubjectDepartment,
	"RANKS":       SubjectRank,
	"RANK":        SubjectRank,
	"FLOORS":      SubjectFloor,
	"FLOOR":       SubjectFloor,
	"STATISTICS":  SubjectStatistics,
	"STATISTIC":   SubjectStatistics,
	"DASHBOARD":   SubjectDashboard,
	"REPORTS":     SubjectReports,
	"REPORT":      SubjectReports,
}

func (s Subject) String() string {
	if n, ok := subjectNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseSubject traduce un token almacenado. ok=false si el token no pertenece al vocabulario.
func ParseSubject(token string) (Subject, bool) {
	s, ok := subjectTokens[normalizeToken(token)]
	return s, ok
}

// Action operación sobre un sujeto. ActionManage es el comodín.
type Action int

// Vocabulario cerrado de acciones.
const (
	ActionUnknown Action = iota
	ActionManage
	ActionRead
	ActionCreate
	ActionUpdate
	ActionDelete
)

var actionNames = map[Action]string{
	ActionManage: "manage",
	ActionRead:   "read",
	ActionCreate: "create",
	ActionUpdate: "update",
	ActionDelete: "delete",
}

var actionTokens = map[string]Action{
	"MANAGE": ActionManage,
	"READ":   ActionRead,
	"CREATE": ActionCreate,
	"UPDATE": ActionUpdate,
	"DELETE": ActionDelete,
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// ParseAction traduce un token almacenado. ok=false si el token no pertenece al vocabulario.
func ParseAction(token string) (Action, bool) {
	a, ok := actionTokens[normalizeToken(token)]
	return a, ok
}

func normalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// Rule regla de permiso compilada. Field vacío = todos los campos.
type Rule struct {
	Action  Action
	Subject Subject
	Field   string
}

// IsUniversal indica si la regla es manage/all sin restricción de campo.
func (r Rule) IsUniversal() bool {
	return r.Action == ActionManage && r.Subject == SubjectAll && r.Field == ""
}

func (r Rule) matches(action Action, subject Subject, field string) bool {
	if r.Action != ActionManage && r.Action != action {
		return false
	}
	if r.Subject != SubjectAll && r.Subject != subject {
		return false
	}
	if r.Field != "" && field != "" && r.Field != field {
		return false
	}
	return true
}

// RuleSet conjunto inmutable de reglas compiladas para un rol.
type RuleSet struct {
	rules []Rule
	guest bool
}

// Rules devuelve una copia de las reglas.
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len número de reglas compiladas.
func (rs RuleSet) Len() int { return len(rs.rules) }

// IsGuest indica si el conjunto es el de invitado (por identidad o por respaldo).
func (rs RuleSet) IsGuest() bool { return rs.guest }

// Can responde si alguna regla permite la acción sobre el sujeto (y campo, si se indica).
func (rs RuleSet) Can(action Action, subject Subject, field ...string) bool {
	f := ""
	if len(field) > 0 {
		f = strings.TrimSpace(field[0])
	}
	for _, r := range rs.rules {
		if r.matches(action, subject, f) {
			return true
		}
	}
	return false
}

// Can forma funcional de RuleSet.Can.
func Can(rs RuleSet, action Action, subject Subject, field ...string) bool {
	return rs.Can(action, subject, field...)
}

// GuestRuleSet conjunto mínimo de invitado: solo lectura de ítems.
func GuestRuleSet() RuleSet {
	return RuleSet{
		rules: []Rule{{Action: ActionRead, Subject: SubjectItem}},
		guest: true,
	}
}

// CompileIssue fila omitida por token desconocido.
type CompileIssue struct {
	Row    entity.Permission
	Reason string
}

func (i CompileIssue) Error() string {
	return fmt.Sprintf("permiso %s/%s omitido: %s", i.Row.Subject, i.Row.Action, i.Reason)
}

// Compile convierte las filas de permisos de un rol en un RuleSet.
// Las filas con tokens desconocidos no son fatales: se devuelven como issues para que
// el llamador las registre. Si no queda ninguna regla, el resultado no tiene reglas;
// la sustitución por invitado la decide Resolve / el caso de uso.
func Compile(rows []entity.Permission) (RuleSet, []CompileIssue) {
	var (
		rules  []Rule
		issues []CompileIssue
	)
	for _, row := range rows {
		if !row.CanAccess {
			continue
		}
		subjectKey := normalizeToken(row.Subject)
		actionKey := normalizeToken(row.Action)
		if subjectKey == "ALL" && actionKey == "MANAGE" {
			rules = append(rules, Rule{Action: ActionManage, Subject: SubjectAll})
			continue
		}
		subject, ok := subjectTokens[subjectKey]
		if !ok {
			issues = append(issues, CompileIssue{Row: row, Reason: "sujeto desconocido"})
			continue
		}
		action, ok := actionTokens[actionKey]
		if !ok {
			issues = append(issues, CompileIssue{Row: row, Reason: "acción desconocida"})
			continue
		}
		rules = append(rules, Rule{
			Action:  action,
			Subject: subject,
			Field:   strings.TrimSpace(row.FieldName),
		})
	}
	return RuleSet{rules: rules}, issues
}

// OrGuest devuelve rs, o el conjunto de invitado si rs no tiene reglas.
func OrGuest(rs RuleSet) RuleSet {
	if rs.Len() == 0 {
		return GuestRuleSet()
	}
	return rs
}
