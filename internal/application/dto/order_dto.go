package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea de orden en creación/edición.
type OrderItemInput struct {
	InventoryItemID string          `json:"inventoryItemId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unitCost"`
}

// CreateOrderRequest body para POST /api/orders. Nace en status draft.
type CreateOrderRequest struct {
	VendorID string           `json:"vendorId"`
	Notes    string           `json:"notes"`
	Items    []OrderItemInput `json:"items"`
}

// UpdateOrderRequest body para PATCH /api/orders/:id (solo en draft). Campos nil = sin cambio.
type UpdateOrderRequest struct {
	VendorID *string           `json:"vendorId"`
	Notes    *string           `json:"notes"`
	Items    *[]OrderItemInput `json:"items"`
}

// OrderItemResponse línea de orden serializada.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventoryItemId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unitCost"`
}

// OrderResponse orden con líneas y total derivado.
type OrderResponse struct {
	ID         string               `json:"id"`
	VendorID   string               `json:"vendorId"`
	Status     string               `json:"status"`
	Notes      string               `json:"notes"`
	OrderedAt  *time.Time           `json:"orderedAt"`
	ReceivedAt *time.Time           `json:"receivedAt"`
	Total      decimal.Decimal      `json:"total"`
	Items      []*OrderItemResponse `json:"items"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}
