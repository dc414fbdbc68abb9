package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/application/usecase"
	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
)

// ItemHandler maneja el CRUD de ítems.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem
// @Description  initial_quantity > 0 se registra como movimiento IN del usuario autenticado.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Produce      json
// @Param        cat_id        query  int     false  "Categoría principal"
// @Param        sub_cat_id    query  int     false  "Sub categoría"
// @Param        item_type_id  query  int     false  "Tipo de ítem"
// @Param        dept_id       query  int     false  "Departamento"
// @Param        user_id       query  int     false  "Usuario asignado; 0 o -1 = en almacén"
// @Param        serial        query  string  false  "Contiene"
// @Param        item_name     query  string  false  "Contiene"
// @Param        ip            query  string  false  "Contiene"
// @Param        comp_name     query  string  false  "Contiene"
// @Success      200  {object}  dto.ListResponse[dto.ItemResponse]
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var in dto.ItemFilterRequest
	for name, dst := range map[string]**int64{
		"cat_id":       &in.CatID,
		"sub_cat_id":   &in.SubCatID,
		"item_type_id": &in.ItemTypeID,
		"dept_id":      &in.DeptID,
		"user_id":      &in.UserID,
	} {
		v, ok := queryID(c, name)
		if !ok {
			return badParam(c, name)
		}
		*dst = v
	}
	in.Serial = strings.TrimSpace(c.Query("serial"))
	in.Name = strings.TrimSpace(c.Query("item_name"))
	in.IP = strings.TrimSpace(c.Query("ip"))
	in.CompName = strings.TrimSpace(c.Query("comp_name"))

	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Update godoc
// @Summary      Actualizar ítem (parcial)
// @Description  La cantidad solo cambia mediante movimientos. Cada campo enviado requiere update sobre Item para ese campo.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rs := GetAbility(c)
	for _, field := range in.Fields() {
		if !rs.Can(ability.ActionUpdate, ability.SubjectItem, field) {
			return deny(c, rs, ability.ActionUpdate, ability.SubjectItem, field)
		}
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem (y su historial de movimientos)
// @Tags         items
// @Security     Bearer
// @Param        id   path  int  true  "ID del ítem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ítem eliminado"})
}
