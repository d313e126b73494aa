package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockio-api/internal/domain"
)

// OrderStatus estado de una orden de compra.
// draft -> submitted -> received; cancelled es terminal desde draft o submitted.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus valida un status de orden recibido en la frontera.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusDraft, OrderStatusSubmitted, OrderStatusReceived, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", domain.ErrInvalidInput
}

// Order orden de compra a un proveedor. Recibirla (status received) es la vía de
// "ingreso por factura" que incrementa InventoryItem.Quantity.
type Order struct {
	ID         string
	OrgID      string
	VendorID   string
	Status     OrderStatus
	Notes      string
	OrderedAt  *time.Time // nil hasta enviar la orden
	ReceivedAt *time.Time // nil hasta recibirla
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []*OrderItem
}

// Total suma de líneas (cantidad * costo unitario). Derivado, nunca almacenado.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// OrderItem línea de una orden. InventoryItemID puede estar vacío cuando la línea
// proviene de un escaneo de factura y aún no se vinculó a un artículo existente.
type OrderItem struct {
	ID              string
	OrderID         string
	InventoryItemID string
	Name            string
	Quantity        int
	UnitCost        decimal.Decimal
}
