package repository

import "github.com/jhoicas/Stockio-api/internal/domain/entity"

// CycleCountSummary conteo con sus estadísticas derivadas (modelo de lectura para listados).
type CycleCountSummary struct {
	Count entity.CycleCount
	Stats entity.CountStats
}

// CycleCountRepository define el puerto de persistencia para conteos cíclicos y su libro por artículo.
type CycleCountRepository interface {
	Create(count *entity.CycleCount) error
	// BulkInsertItems inserta las filas de la foto inicial. Debe ejecutarse en la misma tx que Create.
	BulkInsertItems(items []*entity.CycleCountItem) error
	GetByID(orgID, id string) (*entity.CycleCount, error)
	// GetForUpdate bloquea la fila del conteo (SELECT FOR UPDATE) para serializar
	// registro y cierre concurrentes. Solo tiene sentido dentro de una tx.
	GetForUpdate(orgID, id string) (*entity.CycleCount, error)
	// ListWithStats lista conteos con estadísticas recalculadas por agregación SQL.
	ListWithStats(orgID string, limit, offset int) ([]*CycleCountSummary, error)
	Update(count *entity.CycleCount) error
	// Delete borra el conteo; las filas del libro caen por cascade.
	Delete(orgID, id string) error

	// ListItems devuelve las filas del libro con el resumen del artículo (join).
	ListItems(countID string) ([]*entity.CycleCountItem, error)
	// GetItem busca la fila por (conteo, artículo de inventario).
	GetItem(countID, inventoryItemID string) (*entity.CycleCountItem, error)
	// UpdateItemCount sobrescribe counted_qty, variance, notes y counted_at de una fila.
	UpdateItemCount(item *entity.CycleCountItem) error
}
