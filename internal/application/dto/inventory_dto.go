package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	Bin         string           `json:"bin"`
	Rack        string           `json:"rack"`
	Platform    string           `json:"platform"`
	Status      string           `json:"status"` // vacío = pending
	Quantity    int              `json:"quantity"`
	ParLevel    *int             `json:"parLevel"`
	Cost        *decimal.Decimal `json:"cost"`
}

// UpdateItemRequest body para PATCH /api/items/:id. Campos nil = sin cambio.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	Bin         *string          `json:"bin"`
	Rack        *string          `json:"rack"`
	Platform    *string          `json:"platform"`
	Status      *string          `json:"status"`
	Quantity    *int             `json:"quantity"`
	ParLevel    *int             `json:"parLevel"`
	Cost        *decimal.Decimal `json:"cost"`
}

// ItemResponse representación JSON de un artículo. Los campos anulables se
// serializan como null explícito, nunca se omiten.
type ItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	Bin         string           `json:"bin"`
	Rack        string           `json:"rack"`
	Platform    string           `json:"platform"`
	Status      string           `json:"status"`
	Quantity    int              `json:"quantity"`
	ParLevel    *int             `json:"parLevel"`
	Cost        *decimal.Decimal `json:"cost"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items  []*ItemResponse `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
