package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en order_items con ON DELETE CASCADE.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, org_id, vendor_id, status, notes, ordered_at, received_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrgID, &o.VendorID, &o.Status, &o.Notes, &o.OrderedAt, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la orden y sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrgID, order.VendorID, order.Status, order.Notes,
		order.OrderedAt, order.ReceivedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

func (r *OrderRepo) insertItems(orderID string, items []*entity.OrderItem) error {
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO order_items (id, order_id, inventory_item_id, name, quantity, unit_cost)
			VALUES ($1, $2, nullif($3, ''), $4, $5, $6)`,
			it.ID, orderID, it.InventoryItemID, it.Name, it.Quantity, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas cargadas.
func (r *OrderRepo) GetByID(orgID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND ($2 = '' OR org_id = $2)`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate bloquea la fila de la orden antes de una transición de estado.
func (r *OrderRepo) GetForUpdate(orgID, id string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE id = $1 AND ($2 = '' OR org_id = $2)
		FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadItems(o *entity.Order) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, coalesce(inventory_item_id, ''), name, quantity, unit_cost
		FROM order_items WHERE order_id = $1 ORDER BY name`, o.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.InventoryItemID, &it.Name, &it.Quantity, &it.UnitCost); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	return rows.Err()
}

// List lista órdenes con filtro opcional por status (líneas incluidas).
func (r *OrderRepo) List(orgID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR org_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, orgID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrgID, &o.VendorID, &o.Status, &o.Notes, &o.OrderedAt, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Update actualiza la cabecera y reemplaza las líneas.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET vendor_id = $2, status = $3, notes = $4, ordered_at = $5, received_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.VendorID, order.Status, order.Notes, order.OrderedAt, order.ReceivedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

// Delete borra la orden; order_items cae por ON DELETE CASCADE.
func (r *OrderRepo) Delete(orgID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM orders WHERE id = $1 AND ($2 = '' OR org_id = $2)`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
