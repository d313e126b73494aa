package dto

import "github.com/shopspring/decimal"

// ScanRequest body para POST /api/scan/shelf y /api/scan/invoice.
// Image es la foto en base64 sin prefijo data:; MediaType ej. "image/jpeg".
type ScanRequest struct {
	Image     string `json:"image"`
	MediaType string `json:"mediaType"`
}

// DetectedItemDTO artículo detectado en una foto de estantería.
type DetectedItemDTO struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Confidence float64 `json:"confidence"` // 0.0 – 1.0
}

// ShelfScanResponse resultado del escaneo de estantería.
type ShelfScanResponse struct {
	Items []DetectedItemDTO `json:"items"`
}

// InvoiceLineDTO línea extraída de una factura de proveedor.
type InvoiceLineDTO struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

// InvoiceScanResult extracción cruda de la factura (puerto de visión).
type InvoiceScanResult struct {
	VendorName string           `json:"vendorName"`
	Lines      []InvoiceLineDTO `json:"lines"`
}

// InvoiceScanResponse resultado del escaneo de factura: la extracción más la
// orden draft creada a partir de ella.
type InvoiceScanResponse struct {
	VendorName string           `json:"vendorName"`
	Lines      []InvoiceLineDTO `json:"lines"`
	Order      *OrderResponse   `json:"order"`
}
