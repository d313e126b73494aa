package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/ports"
	"github.com/jhoicas/Stockio-api/internal/domain"
)

// ScanUseCase orquesta el escaneo por foto asistido por IA. Aplica un timeout
// de 30 segundos por llamada de visión para evitar que las latencias externas
// bloqueen los goroutines del servidor.
type ScanUseCase struct {
	vision  ports.VisionService
	orderUC *OrderUseCase
	vendors VendorFinder
}

// VendorFinder subconjunto del caso de uso de proveedores que el escaneo necesita.
type VendorFinder interface {
	FindOrCreateByName(orgID, name string) (string, error)
}

// NewScanUseCase construye el caso de uso inyectando el puerto de visión.
func NewScanUseCase(vision ports.VisionService, orderUC *OrderUseCase, vendors VendorFinder) *ScanUseCase {
	return &ScanUseCase{vision: vision, orderUC: orderUC, vendors: vendors}
}

// ScanShelf analiza una foto de estantería y sugiere artículos con cantidades.
// No escribe nada: la app decide qué crear o actualizar con lo sugerido.
func (uc *ScanUseCase) ScanShelf(ctx context.Context, in dto.ScanRequest) (*dto.ShelfScanResponse, error) {
	if in.Image == "" || in.MediaType == "" {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	items, err := uc.vision.DetectItems(ctx, in.Image, in.MediaType)
	if err != nil {
		return nil, err
	}
	return &dto.ShelfScanResponse{Items: items}, nil
}

// ScanInvoice hace OCR de una factura de proveedor y crea una orden draft con
// las líneas extraídas. El proveedor se busca por nombre o se crea si no existe.
// Recibir la orden después (endpoint de receive) es lo que mueve inventario.
func (uc *ScanUseCase) ScanInvoice(ctx context.Context, orgID string, in dto.ScanRequest) (*dto.InvoiceScanResponse, error) {
	if in.Image == "" || in.MediaType == "" {
		return nil, domain.ErrInvalidInput
	}
	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := uc.vision.ExtractInvoice(scanCtx, in.Image, in.MediaType)
	if err != nil {
		return nil, err
	}

	resp := &dto.InvoiceScanResponse{VendorName: result.VendorName, Lines: result.Lines}
	if len(result.Lines) == 0 {
		return resp, nil
	}

	vendorID, err := uc.vendors.FindOrCreateByName(orgID, result.VendorName)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.OrderItemInput, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, dto.OrderItemInput{
			Name:     l.Name,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		})
	}
	order, err := uc.orderUC.Create(ctx, orgID, dto.CreateOrderRequest{
		VendorID: vendorID,
		Notes:    "creada desde escaneo de factura",
		Items:    lines,
	})
	if err != nil {
		return nil, err
	}
	resp.Order = order
	return resp, nil
}
