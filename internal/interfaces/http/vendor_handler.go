package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// VendorHandler maneja las peticiones HTTP de proveedores.
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

func vendorError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VENDOR_IN_USE", Message: "el proveedor tiene órdenes asociadas"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "name, contactName, email, phone, notes"
// @Success      201  {object}  dto.VendorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vendor, err := h.uc.Create(GetOrgID(c), in)
	if err != nil {
		return vendorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         vendors
// @Produce      json
// @Param        limit   query  int  false  "default 50"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {array}  dto.VendorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	vendors, err := h.uc.List(GetOrgID(c), page.Limit, page.Offset)
	if err != nil {
		return vendorError(c, err)
	}
	return c.JSON(vendors)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         vendors
// @Produce      json
// @Param        id  path  string  true  "UUID del proveedor"
// @Success      200  {object}  dto.VendorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	vendor, err := h.uc.GetByID(GetOrgID(c), c.Params("id"))
	if err != nil {
		return vendorError(c, err)
	}
	return c.JSON(vendor)
}

// Update godoc
// @Summary      Editar proveedor (parcial)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "UUID del proveedor"
// @Param        body  body  dto.UpdateVendorRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.VendorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [patch]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vendor, err := h.uc.Update(GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return vendorError(c, err)
	}
	return c.JSON(vendor)
}

// Delete godoc
// @Summary      Borrar proveedor
// @Tags         vendors
// @Param        id  path  string  true  "UUID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrgID(c), c.Params("id")); err != nil {
		return vendorError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
