package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockio-api/internal/domain"
)

// ItemStatus estado de ciclo de vida de un artículo de inventario.
// Se persiste como string pero el dominio solo acepta los valores cerrados de abajo.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusSold      ItemStatus = "sold"
)

// ParseItemStatus valida un status recibido en la frontera (HTTP/DB).
// Rechaza valores desconocidos en lugar de propagarlos como strings libres.
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemStatusPending, ItemStatusCompleted, ItemStatusSold:
		return ItemStatus(s), nil
	}
	return "", domain.ErrInvalidInput
}

// InventoryItem artículo en stock. Quantity es la única fuente de verdad de
// "cuántos hay ahora": la mutan la edición directa, la recepción de órdenes y el
// cierre de conteos cíclicos — nunca el registro de un conteo.
type InventoryItem struct {
	ID          string
	OrgID       string
	Name        string
	Description string
	ImageURL    string
	Bin         string // ubicación libre: contenedor
	Rack        string // ubicación libre: estante
	Platform    string // etiqueta de categoría/plataforma de venta
	Status      ItemStatus
	Quantity    int              // >= 0
	ParLevel    *int             // nil = no se rastrea nivel mínimo
	Cost        *decimal.Decimal // nil = sin costo registrado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
