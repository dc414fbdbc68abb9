package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/inventory"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// MaxListLimit tope de ListMovements.
const MaxListLimit = 500

// LedgerUseCase mantiene Item.quantity consistente con el libro de movimientos.
// AddMovement y DeleteMovement corren en una transacción con la fila del ítem bloqueada
// (SELECT FOR UPDATE), por lo que dos movimientos sobre el mismo ítem se serializan.
type LedgerUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	typeRepo     repository.MovementTypeRepository
	userRepo     repository.UserRepository
	movRepo      repository.InventoryMovementRepository
	metrics      LedgerMetrics
	log          *logger.Logger
	defaultLimit int
}

// NewLedgerUseCase construye el caso de uso. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	typeRepo repository.MovementTypeRepository,
	userRepo repository.UserRepository,
	movRepo repository.InventoryMovementRepository,
	metrics LedgerMetrics,
	log *logger.Logger,
	defaultLimit int,
) *LedgerUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if defaultLimit <= 0 || defaultLimit > MaxListLimit {
		defaultLimit = 100
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		typeRepo:     typeRepo,
		userRepo:     userRepo,
		movRepo:      movRepo,
		metrics:      metrics,
		log:          log.Component("ledger"),
		defaultLimit: defaultLimit,
	}
}

// MovementInput entrada de AddMovement.
// Quantity es la magnitud (> 0); en ADJUSTMENT es el conteo objetivo.
type MovementInput struct {
	ItemID         int64
	MovementTypeID int64
	Quantity       int
	UserID         int64
	ReferenceNo    *string
	Notes          *string
	FromDeptID     *int64
	ToDeptID       *int64
	FromFloorID    *int64
	ToFloorID      *int64
	Unit           *string // sobrescribe Item.unit antes del movimiento (best-effort)
}

// MovementResult resultado de AddMovement.
type MovementResult struct {
	Movement *entity.InventoryMovement
	Item     *entity.Item
}

// AddMovement valida la entrada, calcula la nueva cantidad y registra el movimiento junto con
// la cantidad del ítem en una sola transacción.
func (uc *LedgerUseCase) AddMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	mt, err := uc.validate(ctx, in)
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	if unit := unitOverride(in.Unit); unit != "" {
		if err := uc.itemRepo.UpdateUnit(ctx, in.ItemID, unit); err != nil {
			uc.log.Warn().Err(err).Int64("item_id", in.ItemID).Str("unit", unit).
				Msg("no se pudo actualizar la unidad; se continúa con el movimiento")
		}
	}

	var mov *entity.InventoryMovement
	var locked *entity.Item
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.InventoryMovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return domain.Internal("lock item", err)
		}
		if item == nil {
			return domain.MissingReference("ítem", in.ItemID)
		}
		newQty, err := inventory.ApplyMovement(item.Quantity, in.Quantity, mt)
		if err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ItemID:         in.ItemID,
			MovementTypeID: mt.ID,
			Quantity:       in.Quantity,
			PreviousQty:    item.Quantity,
			NewQty:         newQty,
			UserID:         in.UserID,
			ReferenceNo:    in.ReferenceNo,
			Notes:          in.Notes,
			FromDeptID:     in.FromDeptID,
			ToDeptID:       in.ToDeptID,
			FromFloorID:    in.FromFloorID,
			ToFloorID:      in.ToFloorID,
			TypeCode:       mt.Code,
			TypeEffect:     mt.Effect,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return domain.Internal("insert movement", err)
		}
		if err := itemRepo.UpdateQuantity(ctx, in.ItemID, newQty); err != nil {
			return domain.Internal("update quantity", err)
		}
		item.Quantity = newQty
		locked = item
		return nil
	})
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	uc.metrics.MovementRecorded(mt.Code)
	uc.log.Info().
		Int64("movement_id", mov.ID).
		Int64("item_id", mov.ItemID).
		Str("type", mt.Code).
		Int("previous_qty", mov.PreviousQty).
		Int("new_qty", mov.NewQty).
		Msg("movimiento registrado")

	return &MovementResult{Movement: mov, Item: uc.reload(ctx, locked)}, nil
}

// unitOverride unidad recortada; vacía si no hay que sobrescribir.
func unitOverride(u *string) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(*u)
}

func (uc *LedgerUseCase) validate(ctx context.Context, in MovementInput) (*entity.MovementType, error) {
	if in.ItemID <= 0 || in.MovementTypeID <= 0 || in.UserID <= 0 {
		return nil, domain.Invalid("item_id, movement_type_id y user_id son obligatorios")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser un entero positivo")
	}

	mt, err := uc.typeRepo.GetByID(ctx, in.MovementTypeID)
	if err != nil {
		return nil, domain.Internal("get movement type", err)
	}
	if mt == nil {
		return nil, domain.MissingReference("tipo de movimiento", in.MovementTypeID)
	}
	if !mt.IsActive {
		return nil, domain.Invalid("el tipo de movimiento %s está inactivo", mt.Code)
	}

	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, domain.Internal("get user", err)
	}
	if user == nil {
		return nil, domain.MissingReference("usuario", in.UserID)
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, domain.Internal("get item", err)
	}
	if item == nil {
		return nil, domain.MissingReference("ítem", in.ItemID)
	}
	return mt, nil
}

// DeleteMovement borra un movimiento y recalcula la cantidad del ítem reproduciendo
// el historial restante en orden (movement_date, movement_id).
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID int64) (*entity.Item, error) {
	if movementID <= 0 {
		return nil, domain.Invalid("movement_id inválido")
	}

	var locked *entity.Item
	var before int
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.InventoryMovementRepository) error {
		mov, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return domain.Internal("get movement", err)
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetForUpdate(ctx, mov.ItemID)
		if err != nil {
			return domain.Internal("lock item", err)
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := movRepo.Delete(ctx, movementID); err != nil {
			return domain.Internal("delete movement", err)
		}
		history, err := movRepo.ListByItemChronological(ctx, item.ID)
		if err != nil {
			return domain.Internal("list item history", err)
		}
		if len(history) == 0 {
			uc.log.Warn().Int64("item_id", item.ID).Int("quantity", item.Quantity).
				Msg("ítem sin movimientos restantes; se conserva la cantidad almacenada")
		}
		qty, err := inventory.Replay(item.Quantity, history)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
			return domain.Internal("update quantity", err)
		}
		before = item.Quantity
		item.Quantity = qty
		locked = item
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.metrics.MovementRejected("replay_negative")
		}
		return nil, err
	}

	uc.metrics.Recomputed()
	uc.log.Info().
		Int64("movement_id", movementID).
		Int64("item_id", locked.ID).
		Int("quantity_before", before).
		Int("quantity_after", locked.Quantity).
		Msg("movimiento eliminado y cantidad recalculada")

	return uc.reload(ctx, locked), nil
}

// ListMovements lista movimientos, más recientes primero. El límite se acota a [1, MaxListLimit];
// 0 o negativo aplica el límite por defecto.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter entity.MovementFilter) ([]*entity.InventoryMovement, error) {
	if filter.ItemID != nil && *filter.ItemID <= 0 {
		return nil, domain.Invalid("item_id inválido")
	}
	if filter.MovementTypeID != nil && *filter.MovementTypeID <= 0 {
		return nil, domain.Invalid("movement_type_id inválido")
	}
	filter.Limit = uc.ClampLimit(filter.Limit)
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Internal("list movements", err)
	}
	return list, nil
}

// ClampLimit aplica el límite por defecto y el tope.
func (uc *LedgerUseCase) ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return uc.defaultLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// ListMovementTypes tipos de movimiento activos, ordenados por id.
func (uc *LedgerUseCase) ListMovementTypes(ctx context.Context) ([]*entity.MovementType, error) {
	list, err := uc.typeRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.Internal("list movement types", err)
	}
	return list, nil
}

// MovementTypeByCode resuelve un tipo activo por código (IN, OUT…).
func (uc *LedgerUseCase) MovementTypeByCode(ctx context.Context, code string) (*entity.MovementType, error) {
	mt, err := uc.typeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.Internal("get movement type", err)
	}
	if mt == nil || !mt.IsActive {
		return nil, domain.Invalid("tipo de movimiento %s no disponible", code)
	}
	return mt, nil
}

// reload devuelve la proyección completa del ítem; si falla se usa la copia bloqueada en la tx.
func (uc *LedgerUseCase) reload(ctx context.Context, fallback *entity.Item) *entity.Item {
	item, err := uc.itemRepo.GetByID(ctx, fallback.ID)
	if err != nil || item == nil {
		uc.log.Warn().Err(err).Int64("item_id", fallback.ID).Msg("no se pudo releer el ítem tras el movimiento")
		return fallback
	}
	return item
}

func (uc *LedgerUseCase) reject(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		uc.metrics.MovementRejected("insufficient_stock")
	case errors.Is(err, domain.ErrValidation):
		uc.metrics.MovementRejected("validation")
	default:
		uc.metrics.MovementRejected("internal")
	}
}
