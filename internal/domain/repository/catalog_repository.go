package repository

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// CatalogRepository persistencia común de los catálogos por nombre
// (departamentos, rangos, pisos, categorías, sub categorías y tipos de ítem).
type CatalogRepository interface {
	// List devuelve las entradas ordenadas por nombre; parentID filtra en catálogos con padre.
	List(ctx context.Context, kind entity.CatalogKind, parentID *int64) ([]*entity.CatalogEntry, error)
	GetByID(ctx context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogEntry, error)
	// FindByKey busca por nombre plegado, dentro de parentID si el catálogo tiene padre.
	FindByKey(ctx context.Context, kind entity.CatalogKind, key string, parentID *int64) (*entity.CatalogEntry, error)
	Create(ctx context.Context, entry *entity.CatalogEntry) error
	Update(ctx context.Context, entry *entity.CatalogEntry) error
	// Delete devuelve domain.ErrConflict si la entrada sigue referenciada.
	Delete(ctx context.Context, kind entity.CatalogKind, id int64) error
}
