package repository

import "github.com/jhoicas/Stockio-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes de compra y sus líneas.
type OrderRepository interface {
	// Create inserta la orden y sus líneas. Debe usarse dentro de una tx si hay líneas.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus líneas cargadas.
	GetByID(orgID, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden antes de una transición de estado.
	GetForUpdate(orgID, id string) (*entity.Order, error)
	List(orgID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	Delete(orgID, id string) error
}
