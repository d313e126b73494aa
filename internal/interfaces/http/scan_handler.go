package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// ScanHandler maneja las peticiones HTTP del escaneo por foto asistido por IA.
// Si el servicio de visión no fue configurado (sin API key), uc es nil y los
// endpoints responden 503 en lugar de fallar en runtime.
type ScanHandler struct {
	uc *usecase.ScanUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *usecase.ScanUseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

func (h *ScanHandler) unavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "AI_UNAVAILABLE",
		Message: "servicio de visión no configurado",
	})
}

// ScanShelf godoc
// @Summary      Escanear estantería
// @Description  Analiza una foto y sugiere artículos con cantidades estimadas.
//
//	No escribe nada en inventario.
//
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "image (base64), mediaType"
// @Success      200  {object}  dto.ShelfScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/scan/shelf [post]
func (h *ScanHandler) ScanShelf(c *fiber.Ctx) error {
	if h.uc == nil {
		return h.unavailable(c)
	}
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ScanShelf(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image y mediaType son requeridos"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "AI_ERROR", Message: err.Error()})
	}
	return c.JSON(resp)
}

// ScanInvoice godoc
// @Summary      Escanear factura de proveedor
// @Description  Extrae proveedor y líneas por OCR y crea una orden draft con
//
//	ellas. El inventario solo se mueve al recibir la orden.
//
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "image (base64), mediaType"
// @Success      200  {object}  dto.InvoiceScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/scan/invoice [post]
func (h *ScanHandler) ScanInvoice(c *fiber.Ctx) error {
	if h.uc == nil {
		return h.unavailable(c)
	}
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ScanInvoice(c.Context(), GetOrgID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image y mediaType son requeridos"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "AI_ERROR", Message: err.Error()})
	}
	return c.JSON(resp)
}
