package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con contexto (fmt.Errorf("%w: ...", ErrX));
// la capa HTTP los traduce a códigos con errors.Is.
var (
	ErrValidation         = errors.New("entrada inválida")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInsufficientStock  = errors.New("la cantidad disponible no es suficiente")
	ErrDuplicateName      = errors.New("ya existe un registro con el mismo nombre")
	ErrInternal           = errors.New("error interno de persistencia")
	ErrEmailAlreadyExists = errors.New("el email o usuario ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

var known = []error{
	ErrValidation, ErrNotFound, ErrInsufficientStock, ErrDuplicateName, ErrInternal,
	ErrEmailAlreadyExists, ErrUnauthorized, ErrForbidden, ErrConflict,
}

// IsKnown indica si err ya envuelve algún error de dominio.
func IsKnown(err error) bool {
	for _, k := range known {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Internal envuelve un fallo inesperado de persistencia como ErrInternal.
// Los errores de dominio pasan sin cambios.
func Internal(op string, err error) error {
	if err == nil || IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// Invalid atajo para errores de validación con mensaje.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// MissingReference referencia a una entidad inexistente en una entrada: es a la vez
// ErrValidation y ErrNotFound.
func MissingReference(what string, id int64) error {
	return fmt.Errorf("%w: %w: %s %d", ErrValidation, ErrNotFound, what, id)
}
