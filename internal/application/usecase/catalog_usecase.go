package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

const maxCatalogName = 100

// CatalogUseCase CRUD común de los catálogos por nombre.
type CatalogUseCase struct {
	repo repository.CatalogRepository
	log  *logger.Logger
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository, log *logger.Logger) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase{repo: repo, log: log.Component("catalogs")}
}

// List entradas del catálogo; parentID filtra sub categorías y tipos de ítem.
func (uc *CatalogUseCase) List(ctx context.Context, kind entity.CatalogKind, parentID *int64) ([]dto.CatalogResponse, error) {
	if !kind.Valid() {
		return nil, domain.Invalid("catálogo desconocido: %s", kind)
	}
	if !kind.HasParent() {
		parentID = nil
	}
	list, err := uc.repo.List(ctx, kind, positiveRef(parentID))
	if err != nil {
		return nil, domain.Internal("list "+string(kind), err)
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.CatalogFromEntity(e))
	}
	return out, nil
}

// Get una entrada. ErrNotFound si no existe.
func (uc *CatalogUseCase) Get(ctx context.Context, kind entity.CatalogKind, id int64) (*dto.CatalogResponse, error) {
	entry, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	out := dto.CatalogFromEntity(entry)
	return &out, nil
}

func (uc *CatalogUseCase) get(ctx context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogEntry, error) {
	if !kind.Valid() {
		return nil, domain.Invalid("catálogo desconocido: %s", kind)
	}
	entry, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, domain.Internal("get "+string(kind), err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Create alta de una entrada. ErrDuplicateName si el nombre ya existe (dentro del padre).
func (uc *CatalogUseCase) Create(ctx context.Context, kind entity.CatalogKind, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	if !kind.Valid() {
		return nil, domain.Invalid("catálogo desconocido: %s", kind)
	}
	if in.Name == nil {
		return nil, domain.Invalid("name es obligatorio")
	}
	entry := &entity.CatalogEntry{Kind: kind}
	if err := uc.apply(ctx, entry, in); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, entry); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, domain.Internal("create "+string(kind), err)
	}
	uc.log.Info().Str("kind", string(kind)).Int64("id", entry.ID).Str("name", entry.Name).Msg("entrada de catálogo creada")
	return uc.Get(ctx, kind, entry.ID)
}

// Update cambia nombre, padre o descripción. Los campos nil no se tocan.
func (uc *CatalogUseCase) Update(ctx context.Context, kind entity.CatalogKind, id int64, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	entry, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, entry, in); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, entry); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, domain.Internal("update "+string(kind), err)
	}
	return uc.Get(ctx, kind, id)
}

// Delete elimina una entrada. ErrConflict si sigue referenciada por ítems, usuarios o hijos.
func (uc *CatalogUseCase) Delete(ctx context.Context, kind entity.CatalogKind, id int64) error {
	if _, err := uc.get(ctx, kind, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, kind, id); err != nil {
		return domain.Internal("delete "+string(kind), err)
	}
	uc.log.Info().Str("kind", string(kind)).Int64("id", id).Msg("entrada de catálogo eliminada")
	return nil
}

func (uc *CatalogUseCase) apply(ctx context.Context, entry *entity.CatalogEntry, in dto.CatalogRequest) error {
	kind := entry.Kind
	if in.Name != nil {
		name := entity.NormalizeName(*in.Name)
		if name == "" {
			return domain.Invalid("name es obligatorio")
		}
		if utf8.RuneCountInString(name) > maxCatalogName {
			return domain.Invalid("name supera %d caracteres", maxCatalogName)
		}
		entry.Name = name
		entry.Key = entity.NameKey(name)
	}

	if kind.HasParent() {
		if in.ParentID != nil {
			if *in.ParentID <= 0 {
				return domain.Invalid("parent_id inválido")
			}
			pid := *in.ParentID
			entry.ParentID = &pid
		}
		if entry.ParentID == nil {
			return domain.Invalid("parent_id es obligatorio para %s", kind)
		}
		if err := checkCatalogRef(ctx, uc.repo, kind.ParentKind(), entry.ParentID); err != nil {
			return err
		}
	} else if in.ParentID != nil {
		return domain.Invalid("%s no admite parent_id", kind)
	}

	if in.Description != nil {
		if !kind.HasDescription() {
			return domain.Invalid("%s no admite descripción", kind)
		}
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			entry.Description = nil
		} else {
			entry.Description = &desc
		}
	}
	return nil
}

func (uc *CatalogUseCase) ensureUnique(ctx context.Context, entry *entity.CatalogEntry) error {
	existing, err := uc.repo.FindByKey(ctx, entry.Kind, entry.Key, entry.ParentID)
	if err != nil {
		return domain.Internal("find "+string(entry.Kind), err)
	}
	if existing != nil && existing.ID != entry.ID {
		return domain.ErrDuplicateName
	}
	return nil
}
