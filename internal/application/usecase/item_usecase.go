package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// MovementRecorder la parte del libro que necesita el alta de ítems.
type MovementRecorder interface {
	AddMovement(ctx context.Context, in inventory.MovementInput) (*inventory.MovementResult, error)
	MovementTypeByCode(ctx context.Context, code string) (*entity.MovementType, error)
}

// ItemUseCase casos de uso CRUD para ítems. Quantity se maneja solo vía movimientos.
type ItemUseCase struct {
	repo     repository.ItemRepository
	catalogs repository.CatalogRepository
	users    repository.UserRepository
	ledger   MovementRecorder
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, catalogs repository.CatalogRepository, users repository.UserRepository, ledger MovementRecorder, log *logger.Logger) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{repo: repo, catalogs: catalogs, users: users, ledger: ledger, log: log.Component("items")}
}

// Create da de alta un ítem con cantidad 0. Si InitialQuantity > 0 la registra como
// movimiento IN a nombre de actorID; si ese movimiento falla el ítem se elimina.
func (uc *ItemUseCase) Create(ctx context.Context, actorID int64, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if in.InitialQuantity < 0 || in.MinQuantity < 0 {
		return nil, domain.Invalid("initial_quantity y min_quantity no pueden ser negativos")
	}
	unit := entity.DefaultItemUnit
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		unit = strings.TrimSpace(*in.Unit)
	}

	now := time.Now()
	item := &entity.Item{
		Name:        name,
		Serial:      in.Serial,
		Kind:        in.Kind,
		Situation:   in.Situation,
		Properties:  in.Properties,
		HDD:         in.HDD,
		RAM:         in.RAM,
		IP:          in.IP,
		CompName:    in.CompName,
		LockNum:     in.LockNum,
		Quantity:    0,
		MinQuantity: in.MinQuantity,
		Unit:        unit,
		UserID:      positiveRef(in.UserID),
		DeptID:      positiveRef(in.DeptID),
		FloorID:     positiveRef(in.FloorID),
		SubCatID:    positiveRef(in.SubCatID),
		ItemTypeID:  positiveRef(in.ItemTypeID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.checkRefs(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, domain.Internal("create item", err)
	}
	uc.log.Info().Int64("item_id", item.ID).Str("item_name", item.Name).Msg("ítem creado")

	if in.InitialQuantity > 0 {
		if err := uc.recordInitial(ctx, actorID, item.ID, in.InitialQuantity); err != nil {
			if delErr := uc.repo.Delete(ctx, item.ID); delErr != nil {
				uc.log.Error().Err(delErr).Int64("item_id", item.ID).Msg("no se pudo revertir el alta del ítem")
			}
			return nil, err
		}
	}
	return uc.GetByID(ctx, item.ID)
}

func (uc *ItemUseCase) recordInitial(ctx context.Context, actorID, itemID int64, qty int) error {
	mt, err := uc.ledger.MovementTypeByCode(ctx, entity.MovementCodeIN)
	if err != nil {
		return err
	}
	note := "cantidad inicial"
	_, err = uc.ledger.AddMovement(ctx, inventory.MovementInput{
		ItemID:         itemID,
		MovementTypeID: mt.ID,
		Quantity:       qty,
		UserID:         actorID,
		Notes:          &note,
	})
	return err
}

// GetByID obtiene un ítem con los nombres de sus relaciones. ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get item", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ItemFromEntity(item)
	return &out, nil
}

// List lista ítems con filtros. user_id 0 o -1 devuelve los ítems en almacén.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ItemFilterRequest) ([]dto.ItemResponse, error) {
	filter := entity.ItemFilter{
		CatID:      positiveRef(in.CatID),
		SubCatID:   positiveRef(in.SubCatID),
		ItemTypeID: positiveRef(in.ItemTypeID),
		DeptID:     positiveRef(in.DeptID),
		Serial:     strings.TrimSpace(in.Serial),
		Name:       strings.TrimSpace(in.Name),
		IP:         strings.TrimSpace(in.IP),
		CompName:   strings.TrimSpace(in.CompName),
	}
	if in.UserID != nil {
		if *in.UserID <= 0 {
			filter.OnlyInStore = true
		} else {
			filter.UserID = positiveRef(in.UserID)
		}
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Internal("list items", err)
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.ItemFromEntity(it))
	}
	return out, nil
}

// Update actualiza los campos presentes. No modifica quantity (solo vía movimientos).
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get item", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateItemName(name); err != nil {
			return nil, err
		}
		item.Name = name
	}
	patchText(&item.Serial, in.Serial)
	patchText(&item.Kind, in.Kind)
	patchText(&item.Situation, in.Situation)
	patchText(&item.Properties, in.Properties)
	patchText(&item.HDD, in.HDD)
	patchText(&item.RAM, in.RAM)
	patchText(&item.IP, in.IP)
	patchText(&item.CompName, in.CompName)
	patchText(&item.LockNum, in.LockNum)
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.Invalid("min_quantity no puede ser negativo")
		}
		item.MinQuantity = *in.MinQuantity
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, domain.Invalid("la unidad no puede estar vacía")
		}
		item.Unit = unit
	}
	patchRef(&item.UserID, in.UserID)
	patchRef(&item.DeptID, in.DeptID)
	patchRef(&item.FloorID, in.FloorID)
	patchRef(&item.SubCatID, in.SubCatID)
	patchRef(&item.ItemTypeID, in.ItemTypeID)

	if err := uc.checkRefs(ctx, item); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, domain.Internal("update item", err)
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el ítem; su historial de movimientos se elimina en cascada.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Internal("get item", err)
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal("delete item", err)
	}
	uc.log.Info().Int64("item_id", id).Int("quantity", item.Quantity).Msg("ítem eliminado")
	return nil
}

func (uc *ItemUseCase) checkRefs(ctx context.Context, item *entity.Item) error {
	if err := checkUserRef(ctx, uc.users, item.UserID); err != nil {
		return err
	}
	if err := checkCatalogRef(ctx, uc.catalogs, entity.CatalogDepartment, item.DeptID); err != nil {
		return err
	}
	if err := checkCatalogRef(ctx, uc.catalogs, entity.CatalogFloor, item.FloorID); err != nil {
		return err
	}
	if err := checkCatalogRef(ctx, uc.catalogs, entity.CatalogSubCategory, item.SubCatID); err != nil {
		return err
	}
	return checkCatalogRef(ctx, uc.catalogs, entity.CatalogItemType, item.ItemTypeID)
}

func validateItemName(name string) error {
	if name == "" {
		return domain.Invalid("item_name es obligatorio")
	}
	if utf8.RuneCountInString(name) > 255 {
		return domain.Invalid("item_name supera 255 caracteres")
	}
	return nil
}

// patchText aplica un texto opcional: nil no cambia, "" lo deja en NULL.
func patchText(dst **string, in *string) {
	if in == nil {
		return
	}
	v := strings.TrimSpace(*in)
	if v == "" {
		*dst = nil
		return
	}
	*dst = &v
}
