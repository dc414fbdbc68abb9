package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/application/authz"
	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	apphttp "github.com/jhoicas/hospital-inventory/internal/interfaces/http"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
	pkgjwt "github.com/jhoicas/hospital-inventory/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "hospital-inventory-test"
	testExpMin    = 60

	adminUserID  int64 = 1
	viewerUserID int64 = 2
)

// fakeResolver reglas fijas por usuario; el invitado recibe GuestRuleSet.
type fakeResolver struct {
	byUser map[int64]ability.RuleSet
	err    error
}

func (f *fakeResolver) ResolveAbility(_ context.Context, userID int64) (ability.RuleSet, error) {
	if f.err != nil {
		return ability.RuleSet{}, f.err
	}
	if rs, ok := f.byUser[userID]; ok {
		return rs, nil
	}
	return ability.GuestRuleSet(), nil
}

func compile(t *testing.T, rows ...entity.Permission) ability.RuleSet {
	t.Helper()
	rs, issues := ability.Compile(rows)
	require.Empty(t, issues)
	return rs
}

func newResolver(t *testing.T) *fakeResolver {
	return &fakeResolver{byUser: map[int64]ability.RuleSet{
		adminUserID: compile(t, entity.Permission{Subject: "ALL", Action: "MANAGE", CanAccess: true}),
		viewerUserID: compile(t,
			entity.Permission{Subject: "ITEMS", Action: "READ", CanAccess: true},
			entity.Permission{Subject: "DASHBOARD", Action: "READ", CanAccess: true},
		),
	}}
}

// buildTestApp app mínima con OptionalAuth + LoadAbility y tres rutas de prueba.
func buildTestApp(resolver *fakeResolver) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestLogging(logger.Nop()))
	g := app.Group("", apphttp.OptionalAuth(testJWTSecret), apphttp.LoadAbility(resolver))
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	}
	g.Get("/items", apphttp.RequireAbility(ability.ActionRead, ability.SubjectItem), ok)
	g.Post("/items", apphttp.RequireAbility(ability.ActionCreate, ability.SubjectItem), ok)
	g.Get("/profile", apphttp.RequireUser(), ok)
	return app
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, 1, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalAuth_SinHeaderEsInvitado(t *testing.T) {
	app := buildTestApp(newResolver(t))
	resp := doRequest(t, app, http.MethodGet, "/items", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "el invitado puede leer ítems")
	var body struct {
		UserID int64 `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, authz.GuestUserID, body.UserID)
}

func TestOptionalAuth_TokenValidoFijaUsuario(t *testing.T) {
	app := buildTestApp(newResolver(t))
	resp := doRequest(t, app, http.MethodGet, "/items", bearer(t, viewerUserID))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		UserID int64 `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, viewerUserID, body.UserID)
}

func TestOptionalAuth_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(newResolver(t))

	for name, header := range map[string]string{
		"firma inválida": "Bearer token.invalido.aqui",
		"esquema basic":  "Basic dXNlcjpwYXNz",
		"token vacío":    "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, "/items", header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
				"un token presente pero inválido no degrada a invitado")
		})
	}
}

func TestOptionalAuth_SecretDistinto_Retorna401(t *testing.T) {
	app := buildTestApp(newResolver(t))
	tok, err := pkgjwt.Generate("otro-secret", adminUserID, 1, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/items", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAbility / RequireUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAbility_InvitadoSinPermiso_Retorna401(t *testing.T) {
	app := buildTestApp(newResolver(t))
	resp := doRequest(t, app, http.MethodPost, "/items", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"el invitado debe autenticarse antes de crear")
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)
}

func TestRequireAbility_UsuarioSinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp(newResolver(t))
	resp := doRequest(t, app, http.MethodPost, "/items", bearer(t, viewerUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Contains(t, body.Message, "Item")
}

func TestRequireAbility_ManageAllPermiteTodo(t *testing.T) {
	app := buildTestApp(newResolver(t))
	resp := doRequest(t, app, http.MethodPost, "/items", bearer(t, adminUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUser_InvitadoRetorna401(t *testing.T) {
	app := buildTestApp(newResolver(t))

	resp := doRequest(t, app, http.MethodGet, "/profile", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := doRequest(t, app, http.MethodGet, "/profile", bearer(t, viewerUserID))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// LoadAbility: traducción de errores de dominio
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadAbility_ErrorInternoRetorna500Generico(t *testing.T) {
	resolver := newResolver(t)
	resolver.err = domain.Internal("cargar permisos", errors.New("conexión rechazada"))
	app := buildTestApp(resolver)

	resp := doRequest(t, app, http.MethodGet, "/items", bearer(t, viewerUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "conexión rechazada", "el detalle interno no se expone")
}

func TestLoadAbility_ReferenciaInexistenteRetorna400(t *testing.T) {
	resolver := newResolver(t)
	resolver.err = domain.MissingReference("rol", 99)
	app := buildTestApp(resolver)

	resp := doRequest(t, app, http.MethodGet, "/items", bearer(t, viewerUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"ErrValidation tiene prioridad sobre ErrNotFound")
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestLogging
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestLogging_AsignaYPropagaRequestID(t *testing.T) {
	app := buildTestApp(newResolver(t))

	resp := doRequest(t, app, http.MethodGet, "/items", "")
	defer resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36, "uuid generado")

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "req-123", resp2.Header.Get("X-Request-ID"))
}
