package inventory

import (
	"fmt"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// NextQuantity aplica un movimiento a la cantidad corriente (servicio de dominio).
// ADJUSTMENT fija la cantidad (quantity es el conteo objetivo); el resto suma quantity*effect.
func NextQuantity(previous, quantity int, typeCode string, effect int) int {
	if typeCode == entity.MovementCodeADJUSTMENT {
		return quantity
	}
	return previous + quantity*effect
}

// ApplyMovement calcula la nueva cantidad y rechaza resultados negativos con ErrInsufficientStock.
func ApplyMovement(previous, quantity int, mt *entity.MovementType) (int, error) {
	next := NextQuantity(previous, quantity, mt.Code, mt.Effect)
	if next < 0 {
		return previous, fmt.Errorf("%w: disponible %d, %s %d", domain.ErrInsufficientStock, previous, mt.Code, quantity)
	}
	return next, nil
}

// Replay recalcula la cantidad de un ítem a partir de su historial restante.
// history debe venir ordenado por (MovementDate, ID) ascendente.
// La semilla es el PreviousQty del primer movimiento; sin movimientos se conserva fallback
// (la cantidad almacenada del ítem). Falla si algún paso intermedio queda negativo.
func Replay(fallback int, history []*entity.InventoryMovement) (int, error) {
	if len(history) == 0 {
		return fallback, nil
	}
	qty := history[0].PreviousQty
	for _, m := range history {
		qty = NextQuantity(qty, m.Quantity, m.TypeCode, m.TypeEffect)
		if qty < 0 {
			return 0, fmt.Errorf("%w: el recálculo queda en %d en el movimiento %d", domain.ErrInsufficientStock, qty, m.ID)
		}
	}
	return qty, nil
}
