package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/prep"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// PrepHandler maneja las peticiones HTTP del rastreador de preparación.
type PrepHandler struct {
	uc *prep.PrepUseCase
}

// NewPrepHandler construye el handler.
func NewPrepHandler(uc *prep.PrepUseCase) *PrepHandler {
	return &PrepHandler{uc: uc}
}

func prepError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem de preparación no encontrado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear ítem de preparación
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrepItemRequest  true  "name, unit (each|batch|tray|quart|pound), parLevel"
// @Success      201  {object}  dto.PrepItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/prep-items [post]
func (h *PrepHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrepItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(GetOrgID(c), in)
	if err != nil {
		return prepError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List godoc
// @Summary      Listar ítems de preparación
// @Tags         prep
// @Produce      json
// @Success      200  {array}  dto.PrepItemResponse
// @Router       /api/prep-items [get]
func (h *PrepHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(GetOrgID(c))
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener ítem de preparación
// @Tags         prep
// @Produce      json
// @Param        id  path  string  true  "UUID del ítem"
// @Success      200  {object}  dto.PrepItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prep-items/{id} [get]
func (h *PrepHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(GetOrgID(c), c.Params("id"))
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(item)
}

// Update godoc
// @Summary      Editar ítem de preparación (parcial)
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "UUID del ítem"
// @Param        body  body  dto.UpdatePrepItemRequest  true  "name, unit, parLevel"
// @Success      200  {object}  dto.PrepItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prep-items/{id} [patch]
func (h *PrepHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePrepItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(item)
}

// Delete godoc
// @Summary      Borrar ítem de preparación
// @Tags         prep
// @Param        id  path  string  true  "UUID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prep-items/{id} [delete]
func (h *PrepHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(GetOrgID(c), c.Params("id")); err != nil {
		return prepError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPrep godoc
// @Summary      Registrar preparación completada
// @Description  Inserta el evento en la bitácora e incrementa el nivel actual,
//
//	ambos en la misma transacción.
//
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "UUID del ítem"
// @Param        body  body  dto.RecordPrepRequest  true  "quantity, notes"
// @Success      200  {object}  dto.PrepItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prep-items/{id}/prep [post]
func (h *PrepHandler) RecordPrep(c *fiber.Ctx) error {
	var in dto.RecordPrepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.RecordPrep(c.Context(), GetOrgID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(item)
}

// ListLogs godoc
// @Summary      Bitácora de un ítem de preparación
// @Tags         prep
// @Produce      json
// @Param        id     path   string  true   "UUID del ítem"
// @Param        limit  query  int     false  "default 50"
// @Success      200  {array}  dto.PrepLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prep-items/{id}/logs [get]
func (h *PrepHandler) ListLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.uc.ListLogs(GetOrgID(c), c.Params("id"), limit)
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(logs)
}

// PrepSheet godoc
// @Summary      Hoja de preparación
// @Description  Ítems por debajo del nivel par, con lo que falta preparar de cada uno.
// @Tags         prep
// @Produce      json
// @Success      200  {array}  dto.PrepItemResponse
// @Router       /api/prep-sheet [get]
func (h *PrepHandler) PrepSheet(c *fiber.Ctx) error {
	items, err := h.uc.PrepSheet(GetOrgID(c))
	if err != nil {
		return prepError(c, err)
	}
	return c.JSON(items)
}

// ResetLevels godoc
// @Summary      Reset de inicio de día
// @Description  Lleva todos los niveles a cero dejando el evento negativo en la
//
//	bitácora de cada ítem.
//
// @Tags         prep
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/prep-items/reset [post]
func (h *PrepHandler) ResetLevels(c *fiber.Ctx) error {
	if err := h.uc.ResetLevels(c.Context(), GetOrgID(c), GetUserID(c)); err != nil {
		return prepError(c, err)
	}
	return c.JSON(fiber.Map{"message": "niveles reiniciados"})
}
