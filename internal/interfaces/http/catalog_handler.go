package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/application/usecase"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// CatalogHandler CRUD de un catálogo por nombre; una instancia por tipo.
type CatalogHandler struct {
	uc   *usecase.CatalogUseCase
	kind entity.CatalogKind
	// parentQuery nombre del filtro por padre en GET (cat_id, sub_cat_id); vacío si no aplica.
	parentQuery string
}

// NewCatalogHandler construye el handler para kind.
func NewCatalogHandler(uc *usecase.CatalogUseCase, kind entity.CatalogKind) *CatalogHandler {
	h := &CatalogHandler{uc: uc, kind: kind}
	switch kind {
	case entity.CatalogSubCategory:
		h.parentQuery = "cat_id"
	case entity.CatalogItemType:
		h.parentQuery = "sub_cat_id"
	}
	return h
}

// List godoc
// @Summary      Listar entradas del catálogo
// @Tags         catalogs
// @Produce      json
// @Param        parent_id   query  int  false  "Padre (sub categorías e item types); alias cat_id / sub_cat_id"
// @Success      200  {object}  dto.ListResponse[dto.CatalogResponse]
// @Router       /api/departments [get]
// @Router       /api/ranks [get]
// @Router       /api/floors [get]
// @Router       /api/categories [get]
// @Router       /api/sub-categories [get]
// @Router       /api/item-types [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	name := "parent_id"
	if h.parentQuery != "" && c.Query(h.parentQuery) != "" {
		name = h.parentQuery
	}
	parentID, ok := queryID(c, name)
	if !ok {
		return badParam(c, name)
	}
	list, err := h.uc.List(c.Context(), h.kind, parentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Obtener entrada del catálogo
// @Tags         catalogs
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.Get(c.Context(), h.kind, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear entrada del catálogo
// @Description  El nombre es único sin distinguir mayúsculas (dentro del padre para sub categorías e item types).
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogRequest  true  "name, parent_id, description"
// @Success      201   {object}  dto.CatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar entrada del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID"
// @Param        body  body  dto.CatalogRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.CatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), h.kind, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada del catálogo (409 si está en uso)
// @Tags         catalogs
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.Context(), h.kind, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "eliminado"})
}
