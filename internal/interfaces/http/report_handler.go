package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/reports"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// ReportHandler reportes imprimibles en PDF.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// PrepSheetPDF godoc
// @Summary      Hoja de preparación en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/prep-sheet/pdf [get]
func (h *ReportHandler) PrepSheetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.PrepSheetPDF(c.Context(), GetOrgID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="prep-sheet.pdf"`)
	return c.Send(pdfBytes)
}

// CycleCountReportPDF godoc
// @Summary      Reporte de varianzas de un conteo en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        id  path  string  true  "UUID del conteo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id}/report.pdf [get]
func (h *ReportHandler) CycleCountReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.CycleCountReportPDF(c.Context(), GetOrgID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conteo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="count-report.pdf"`)
	return c.Send(pdfBytes)
}
