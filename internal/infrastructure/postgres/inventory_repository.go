package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
// El scope de tenant va en el WHERE: orgID vacío significa vista global sin filtro.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const itemColumns = `id, org_id, name, description, image_url, bin, rack, platform, status, quantity, par_level, cost, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.OrgID, &it.Name, &it.Description, &it.ImageURL, &it.Bin, &it.Rack,
		&it.Platform, &it.Status, &it.Quantity, &it.ParLevel, &it.Cost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrgID, item.Name, item.Description, item.ImageURL, item.Bin, item.Rack,
		item.Platform, item.Status, item.Quantity, item.ParLevel, item.Cost, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID dentro del scope del tenant.
func (r *InventoryRepo) GetByID(orgID, id string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE id = $1 AND ($2 = '' OR org_id = $2)`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// List lista artículos con filtro opcional por status y paginación.
func (r *InventoryRepo) List(orgID string, status entity.ItemStatus, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR org_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, orgID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListByStatus lista sin paginar; usado por la foto inicial del conteo cíclico.
// Dentro de una tx la lectura es consistente con las inserciones del conteo.
func (r *InventoryRepo) ListByStatus(orgID string, status entity.ItemStatus) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR org_id = $1) AND status = $2
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, orgID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list inventory items by status: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Update actualiza un artículo existente (incluida la edición directa de quantity).
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, description = $3, image_url = $4, bin = $5, rack = $6, platform = $7,
		    status = $8, quantity = $9, par_level = $10, cost = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.ImageURL, item.Bin, item.Rack, item.Platform,
		item.Status, item.Quantity, item.ParLevel, item.Cost, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateQuantity escribe la cantidad absoluta (cierre de conteo cíclico).
func (r *InventoryRepo) UpdateQuantity(itemID string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// IncrementQuantity suma delta a la cantidad (recepción de órdenes).
func (r *InventoryRepo) IncrementQuantity(itemID string, delta int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		itemID, delta,
	)
	if err != nil {
		return fmt.Errorf("increment inventory quantity: %w", err)
	}
	return nil
}

// Delete elimina un artículo. Las filas de conteos pasados no caen (sin FK cascade
// hacia cycle_count_items: persisten como registro histórico).
func (r *InventoryRepo) Delete(orgID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_items WHERE id = $1 AND ($2 = '' OR org_id = $2)`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.OrgID, &it.Name, &it.Description, &it.ImageURL, &it.Bin, &it.Rack,
			&it.Platform, &it.Status, &it.Quantity, &it.ParLevel, &it.Cost, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
