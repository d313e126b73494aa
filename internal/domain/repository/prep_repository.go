package repository

import "github.com/jhoicas/Stockio-api/internal/domain/entity"

// PrepRepository define el puerto para ítems de preparación y su bitácora append-only.
type PrepRepository interface {
	CreateItem(item *entity.PrepItem) error
	GetItemByID(orgID, id string) (*entity.PrepItem, error)
	// GetItemForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) antes de mover el nivel.
	GetItemForUpdate(orgID, id string) (*entity.PrepItem, error)
	ListItems(orgID string) ([]*entity.PrepItem, error)
	UpdateItem(item *entity.PrepItem) error
	// UpdateLevel escribe solo current_level (usado junto con CreateLog en una tx).
	UpdateLevel(itemID string, level int) error
	DeleteItem(orgID, id string) error

	CreateLog(log *entity.PrepLog) error
	ListLogs(prepItemID string, limit int) ([]*entity.PrepLog, error)
}
