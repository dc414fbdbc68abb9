package inventory

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// AddMovementFromRequest adapta el request HTTP al caso de uso AddMovement(ctx, MovementInput).
// userID es el actor autenticado, nunca el del body.
func (uc *LedgerUseCase) AddMovementFromRequest(ctx context.Context, userID int64, in dto.AddMovementRequest) (*dto.AddMovementResponse, error) {
	res, err := uc.AddMovement(ctx, MovementInput{
		ItemID:         in.ItemID,
		MovementTypeID: in.MovementTypeID,
		Quantity:       in.Quantity,
		UserID:         userID,
		ReferenceNo:    in.ReferenceNo,
		Notes:          in.Notes,
		FromDeptID:     in.FromDeptID,
		ToDeptID:       in.ToDeptID,
		FromFloorID:    in.FromFloorID,
		ToFloorID:      in.ToFloorID,
		Unit:           in.Unit,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AddMovementResponse{
		MovementID: res.Movement.ID,
		Movement:   dto.MovementFromEntity(res.Movement),
		Item:       dto.ItemFromEntity(res.Item),
	}, nil
}

// DeleteMovementToResponse DeleteMovement con la proyección HTTP del ítem.
func (uc *LedgerUseCase) DeleteMovementToResponse(ctx context.Context, movementID int64) (*dto.ItemResponse, error) {
	item, err := uc.DeleteMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}
	out := dto.ItemFromEntity(item)
	return &out, nil
}

// ListMovementsToResponse ListMovements con la proyección HTTP.
func (uc *LedgerUseCase) ListMovementsToResponse(ctx context.Context, filter entity.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.MovementsFromEntities(list), nil
}

// ListMovementTypesToResponse ListMovementTypes con la proyección HTTP.
func (uc *LedgerUseCase) ListMovementTypesToResponse(ctx context.Context) ([]dto.MovementTypeResponse, error) {
	list, err := uc.ListMovementTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.MovementTypeFromEntity(t))
	}
	return out, nil
}
