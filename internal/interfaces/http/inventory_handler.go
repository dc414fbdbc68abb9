package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// InventoryHandler maneja el libro de movimientos y la lista de reposición.
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// AddMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  ADJUSTMENT fija la cantidad a quantity; el resto suma quantity*effect.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddMovementRequest  true  "item_id, movement_type_id, quantity"
// @Success      201   {object}  dto.AddMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.AddMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.AddMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento y recalcular la cantidad del ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	item, err := h.ledger.DeleteMovementToResponse(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado", "item": item})
}

// ListMovements godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id           query  int  false  "Filtrar por ítem"
// @Param        movement_type_id  query  int  false  "Filtrar por tipo"
// @Param        limit             query  int  false  "Máximo 500"  default(100)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter, ok := movementFilter(c)
	if !ok {
		return badParam(c, "filtro")
	}
	list, err := h.ledger.ListMovementsToResponse(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// ListMovementTypes godoc
// @Summary      Tipos de movimiento activos
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.MovementTypeResponse]
// @Router       /api/inventory/movement-types [get]
func (h *InventoryHandler) ListMovementTypes(c *fiber.Ctx) error {
	list, err := h.ledger.ListMovementTypesToResponse(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Ítems en o bajo su mínimo con la cantidad sugerida de pedido, agotados primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// movementFilter lee item_id, movement_type_id y limit del query string.
func movementFilter(c *fiber.Ctx) (entity.MovementFilter, bool) {
	itemID, ok := queryID(c, "item_id")
	if !ok {
		return entity.MovementFilter{}, false
	}
	typeID, ok := queryID(c, "movement_type_id")
	if !ok {
		return entity.MovementFilter{}, false
	}
	return entity.MovementFilter{ItemID: itemID, MovementTypeID: typeID, Limit: c.QueryInt("limit", 0)}, true
}
