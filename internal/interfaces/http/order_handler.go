package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func orderError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden o proveedor no encontrado"})
	case domain.ErrOrderNotOpen:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ORDER_NOT_OPEN", Message: "la orden no admite esta transición"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear orden de compra (draft)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "vendorId, notes, items"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), GetOrgID(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "draft | submitted | received | cancelled"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(GetOrgID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(orders)
}

// GetByID godoc
// @Summary      Obtener orden con líneas
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(GetOrgID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// Update godoc
// @Summary      Editar orden (solo en draft)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "UUID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "vendorId, notes, items"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Update(c.Context(), GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// Submit godoc
// @Summary      Enviar orden al proveedor
// @Description  Transición draft -> submitted.
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	order, err := h.uc.Submit(c.Context(), GetOrgID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// Receive godoc
// @Summary      Recibir orden
// @Description  Transición submitted -> received. Incrementa la cantidad de cada
//
//	artículo vinculado en la misma transacción.
//
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	order, err := h.uc.Receive(c.Context(), GetOrgID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// Delete godoc
// @Summary      Borrar orden (draft o cancelled)
// @Tags         orders
// @Param        id  path  string  true  "UUID de la orden"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrgID(c), c.Params("id")); err != nil {
		return orderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
