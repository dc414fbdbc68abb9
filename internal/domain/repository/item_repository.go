package repository

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Usable con pool o dentro de una transacción.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	// Update persiste los campos descriptivos; nunca toca quantity.
	Update(ctx context.Context, item *entity.Item) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	UpdateUnit(ctx context.Context, id int64, unit string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
}
