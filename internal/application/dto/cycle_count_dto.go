package dto

import "time"

// StartCycleCountRequest body para POST /api/cycle-counts.
type StartCycleCountRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// UpdateCycleCountRequest body para PATCH /api/cycle-counts/:id. Campos nil = sin cambio.
type UpdateCycleCountRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// RecordCountRequest body para POST /api/cycle-counts/:id/items/:itemId/count.
// CountedQty es puntero para distinguir "campo omitido" (inválido) de un conteo
// explícito de cero (estante vacío, válido).
type RecordCountRequest struct {
	CountedQty *int    `json:"countedQty"`
	Notes      *string `json:"notes"`
}

// CompleteCycleCountRequest body para POST /api/cycle-counts/:id/complete.
type CompleteCycleCountRequest struct {
	ApplyChanges bool `json:"applyChanges"`
}

// CountStatsDTO estadísticas derivadas en cada lectura (nunca cacheadas).
type CountStatsDTO struct {
	TotalItems        int     `json:"totalItems"`
	CountedItems      int     `json:"countedItems"`
	ItemsWithVariance int     `json:"itemsWithVariance"`
	Progress          float64 `json:"progress"`
}

// CycleCountResponse conteo con estadísticas; Items solo se llena en el detalle.
type CycleCountResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Status      string               `json:"status"`
	Notes       string               `json:"notes"`
	StartedAt   time.Time            `json:"startedAt"`
	CompletedAt *time.Time           `json:"completedAt"`
	Stats       CountStatsDTO        `json:"stats"`
	Items       []*CycleCountItemDTO `json:"items,omitempty"`
}

// CycleCountItemDTO fila del libro con el resumen del artículo para la pantalla de conteo.
type CycleCountItemDTO struct {
	ID              string     `json:"id"`
	InventoryItemID string     `json:"inventoryItemId"`
	ExpectedQty     int        `json:"expectedQty"`
	CountedQty      *int       `json:"countedQty"`
	Variance        *int       `json:"variance"`
	Notes           *string    `json:"notes"`
	CountedAt       *time.Time `json:"countedAt"`
	ItemName        string     `json:"itemName"`
	ItemImageURL    string     `json:"itemImageUrl"`
	ItemBin         string     `json:"itemBin"`
	ItemRack        string     `json:"itemRack"`
}
