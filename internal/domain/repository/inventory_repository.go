package repository

import "github.com/jhoicas/Stockio-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para InventoryItem (DIP).
// orgID vacío = vista global sin tenant (llamadas sin identidad).
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(orgID, id string) (*entity.InventoryItem, error)
	List(orgID string, status entity.ItemStatus, limit, offset int) ([]*entity.InventoryItem, error)
	// ListByStatus lista sin paginar; usado por la foto inicial del conteo cíclico.
	ListByStatus(orgID string, status entity.ItemStatus) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// UpdateQuantity escribe la cantidad absoluta (cierre de conteo, edición directa).
	UpdateQuantity(itemID string, quantity int) error
	// IncrementQuantity suma delta a la cantidad (recepción de órdenes). Debe usarse dentro de una tx.
	IncrementQuantity(itemID string, delta int) error
	Delete(orgID, id string) error
}
