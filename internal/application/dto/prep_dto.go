package dto

import "time"

// CreatePrepItemRequest body para POST /api/prep-items.
type CreatePrepItemRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	ParLevel int    `json:"parLevel"`
}

// UpdatePrepItemRequest body para PATCH /api/prep-items/:id. Campos nil = sin cambio.
type UpdatePrepItemRequest struct {
	Name     *string `json:"name"`
	Unit     *string `json:"unit"`
	ParLevel *int    `json:"parLevel"`
}

// RecordPrepRequest body para POST /api/prep-items/:id/prep.
type RecordPrepRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// PrepItemResponse ítem de preparación con el faltante derivado contra el par.
type PrepItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	CurrentLevel int       `json:"currentLevel"`
	ParLevel     int       `json:"parLevel"`
	Needed       int       `json:"needed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PrepLogResponse evento de la bitácora de preparación.
type PrepLogResponse struct {
	ID         string    `json:"id"`
	PrepItemID string    `json:"prepItemId"`
	Quantity   int       `json:"quantity"`
	Notes      string    `json:"notes"`
	UserID     string    `json:"userId"`
	PreppedAt  time.Time `json:"preppedAt"`
}
