package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/domain"
)

func TestWriteError_TraduceErroresDeDominio(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validación", domain.Invalid("quantity debe ser positiva"), fiber.StatusBadRequest},
		{"referencia inexistente", domain.MissingReference("ítem", 7), fiber.StatusBadRequest},
		{"no encontrado", fmt.Errorf("movimiento 9: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{"stock insuficiente", domain.ErrInsufficientStock, fiber.StatusConflict},
		{"nombre duplicado", domain.ErrDuplicateName, fiber.StatusConflict},
		{"email existente", domain.ErrEmailAlreadyExists, fiber.StatusConflict},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden},
		{"interno", domain.Internal("update quantity", errors.New("timeout")), fiber.StatusInternalServerError},
		{"desconocido", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestParamIDYQueryID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badParam(c, "id")
		}
		parent, ok := queryID(c, "parent_id")
		if !ok {
			return badParam(c, "parent_id")
		}
		return c.JSON(fiber.Map{"id": id, "has_parent": parent != nil})
	})

	for path, status := range map[string]int{
		"/items/5":                fiber.StatusOK,
		"/items/5?parent_id=3":    fiber.StatusOK,
		"/items/0":                fiber.StatusBadRequest,
		"/items/-2":               fiber.StatusBadRequest,
		"/items/abc":              fiber.StatusBadRequest,
		"/items/5?parent_id=nulo": fiber.StatusBadRequest,
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode, path)
	}
}
