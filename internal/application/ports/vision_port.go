package ports

import (
	"context"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
)

// VisionService puerto hacia el proveedor de visión por IA. La aplicación no
// conoce el vendor concreto; solo este contrato.
type VisionService interface {
	// DetectItems analiza una foto de estantería y devuelve los artículos
	// detectados con cantidad estimada y confianza.
	DetectItems(ctx context.Context, imageBase64, mediaType string) ([]dto.DetectedItemDTO, error)
	// ExtractInvoice hace OCR de una factura de proveedor y devuelve el nombre
	// del proveedor y las líneas (nombre, cantidad, costo unitario).
	ExtractInvoice(ctx context.Context, imageBase64, mediaType string) (*dto.InvoiceScanResult, error)
}
