package repository

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el libro de movimientos.
// GetByID devuelve (nil, nil) si el movimiento no existe.
type InventoryMovementRepository interface {
	// Create inserta el movimiento y rellena ID, MovementDate y CreatedAt.
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryMovement, error)
	// Delete devuelve domain.ErrNotFound si la fila ya no existe.
	Delete(ctx context.Context, id int64) error
	// ListByItemChronological devuelve el historial de un ítem ordenado por
	// (movement_date ASC, movement_id ASC), con TypeCode y TypeEffect cargados.
	ListByItemChronological(ctx context.Context, itemID int64) ([]*entity.InventoryMovement, error)
	// List devuelve los movimientos más recientes primero; filter.Limit ya viene acotado.
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.InventoryMovement, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// MovementTypeRepository catálogo de tipos de movimiento.
type MovementTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.MovementType, error)
	GetByCode(ctx context.Context, code string) (*entity.MovementType, error)
	// ListActive tipos con is_active, ordenados por movement_type_id.
	ListActive(ctx context.Context) ([]*entity.MovementType, error)
}
