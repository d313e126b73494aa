package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// CycleCountHandler maneja las peticiones HTTP del conteo cíclico.
type CycleCountHandler struct {
	uc *counting.CycleCountUseCase
}

// NewCycleCountHandler construye el handler.
func NewCycleCountHandler(uc *counting.CycleCountUseCase) *CycleCountHandler {
	return &CycleCountHandler{uc: uc}
}

// countError traduce los errores del caso de uso al contrato HTTP. Todos los
// handlers del conteo comparten esta tabla.
func countError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conteo o artículo no encontrado"})
	case domain.ErrCountNotOpen:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "COUNT_NOT_OPEN", Message: "el conteo no está en progreso"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Start godoc
// @Summary      Iniciar conteo cíclico
// @Description  Crea un conteo in_progress con una fila por cada artículo pending,
//
//	congelando la cantidad esperada al instante de inicio.
//
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartCycleCountRequest  true  "name, notes"
// @Success      201  {object}  dto.CycleCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts [post]
func (h *CycleCountHandler) Start(c *fiber.Ctx) error {
	var in dto.StartCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.StartCycleCount(c.Context(), GetOrgID(c), in)
	if err != nil {
		return countError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(count)
}

// List godoc
// @Summary      Listar conteos con estadísticas
// @Tags         cycle-counts
// @Produce      json
// @Param        limit   query  int  false  "default 50"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {array}  dto.CycleCountResponse
// @Router       /api/cycle-counts [get]
func (h *CycleCountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := h.uc.ListCycleCounts(c.Context(), GetOrgID(c), page.Limit, page.Offset)
	if err != nil {
		return countError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Detalle de un conteo
// @Description  Devuelve el conteo con sus filas (sin contar primero, luego por
//
//	nombre) y estadísticas recalculadas.
//
// @Tags         cycle-counts
// @Produce      json
// @Param        id  path  string  true  "UUID del conteo"
// @Success      200  {object}  dto.CycleCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id} [get]
func (h *CycleCountHandler) GetByID(c *fiber.Ctx) error {
	count, err := h.uc.GetCycleCount(c.Context(), GetOrgID(c), c.Params("id"))
	if err != nil {
		return countError(c, err)
	}
	return c.JSON(count)
}

// Update godoc
// @Summary      Editar conteo (parcial)
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "UUID del conteo"
// @Param        body  body  dto.UpdateCycleCountRequest  true  "name, status, notes"
// @Success      200  {object}  dto.CycleCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id} [patch]
func (h *CycleCountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.UpdateCycleCount(c.Context(), GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return countError(c, err)
	}
	return c.JSON(count)
}

// Delete godoc
// @Summary      Borrar conteo
// @Description  Borra el conteo y sus filas (cascade) y confirma con 200.
// @Tags         cycle-counts
// @Produce      json
// @Param        id  path  string  true  "UUID del conteo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id} [delete]
func (h *CycleCountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCycleCount(c.Context(), GetOrgID(c), c.Params("id")); err != nil {
		return countError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo eliminado"})
}

// RecordCount godoc
// @Summary      Registrar conteo físico de un artículo
// @Description  Guarda countedQty y la varianza contra la cantidad esperada
//
//	congelada. Una segunda llamada sobre el mismo artículo sobrescribe la anterior.
//
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id      path  string                  true  "UUID del conteo"
// @Param        itemId  path  string                  true  "UUID del artículo de inventario"
// @Param        body    body  dto.RecordCountRequest  true  "countedQty, notes"
// @Success      200  {object}  dto.CycleCountItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id}/items/{itemId}/count [post]
func (h *CycleCountHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.uc.RecordCount(c.Context(), GetOrgID(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return countError(c, err)
	}
	return c.JSON(row)
}

// Complete godoc
// @Summary      Cerrar conteo
// @Description  Transición terminal. Con applyChanges=true escribe las cantidades
//
//	contadas sobre el inventario; las filas sin contar no se tocan.
//
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "UUID del conteo"
// @Param        body  body  dto.CompleteCycleCountRequest  true  "applyChanges"
// @Success      200  {object}  dto.CycleCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id}/complete [post]
func (h *CycleCountHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.CompleteCycleCount(c.Context(), GetOrgID(c), c.Params("id"), in.ApplyChanges)
	if err != nil {
		return countError(c, err)
	}
	return c.JSON(count)
}
