package inventory

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro: el movimiento y la cantidad del ítem se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// LedgerMetrics contadores del libro. Implementado por infrastructure/metrics.
type LedgerMetrics interface {
	MovementRecorded(typeCode string)
	MovementRejected(reason string)
	Recomputed()
}

type nopMetrics struct{}

func (nopMetrics) MovementRecorded(string) {}
func (nopMetrics) MovementRejected(string) {}
func (nopMetrics) Recomputed()             {}
