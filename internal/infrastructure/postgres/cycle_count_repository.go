package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

// CycleCountRepo implementación del puerto CycleCountRepository sobre PostgreSQL
// (usable con pool o tx). Las filas del libro cuelgan de cycle_counts con
// ON DELETE CASCADE y un unique (cycle_count_id, inventory_item_id).
type CycleCountRepo struct {
	q Querier
}

// NewCycleCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleCountRepository(q Querier) *CycleCountRepo {
	return &CycleCountRepo{q: q}
}

const countColumns = `id, org_id, name, status, notes, started_at, completed_at`

func scanCount(row pgx.Row) (*entity.CycleCount, error) {
	var c entity.CycleCount
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Status, &c.Notes, &c.StartedAt, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste el conteo.
func (r *CycleCountRepo) Create(count *entity.CycleCount) error {
	query := `
		INSERT INTO cycle_counts (` + countColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.OrgID, count.Name, count.Status, count.Notes, count.StartedAt, count.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cycle count: %w", err)
	}
	return nil
}

// BulkInsertItems inserta las filas de la foto inicial con CopyFrom.
func (r *CycleCountRepo) BulkInsertItems(items []*entity.CycleCountItem) error {
	copier, ok := r.q.(interface {
		CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	})
	if !ok {
		return fmt.Errorf("bulk insert cycle count items: querier sin CopyFrom")
	}
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.ID, it.CycleCountID, it.InventoryItemID, it.ExpectedQty})
	}
	_, err := copier.CopyFrom(context.Background(),
		pgx.Identifier{"cycle_count_items"},
		[]string{"id", "cycle_count_id", "inventory_item_id", "expected_qty"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bulk insert cycle count items: fila duplicada: %w", err)
		}
		return fmt.Errorf("bulk insert cycle count items: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo dentro del scope del tenant.
func (r *CycleCountRepo) GetByID(orgID, id string) (*entity.CycleCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM cycle_counts WHERE id = $1 AND ($2 = '' OR org_id = $2)`
	c, err := scanCount(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el conteo y bloquea su fila (SELECT FOR UPDATE) para
// serializar registro y cierre concurrentes. Solo tiene sentido dentro de una tx.
func (r *CycleCountRepo) GetForUpdate(orgID, id string) (*entity.CycleCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM cycle_counts WHERE id = $1 AND ($2 = '' OR org_id = $2)
		FOR UPDATE`
	c, err := scanCount(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count for update: %w", err)
	}
	return c, nil
}

// ListWithStats lista conteos con estadísticas recalculadas por agregación SQL
// sobre las filas autoritativas (nunca hay contadores almacenados).
func (r *CycleCountRepo) ListWithStats(orgID string, limit, offset int) ([]*repository.CycleCountSummary, error) {
	query := `
		SELECT c.id, c.org_id, c.name, c.status, c.notes, c.started_at, c.completed_at,
		       count(i.id)                                            AS total_items,
		       count(i.counted_qty)                                   AS counted_items,
		       count(*) FILTER (WHERE i.variance IS NOT NULL AND i.variance <> 0) AS items_with_variance
		FROM cycle_counts c
		LEFT JOIN cycle_count_items i ON i.cycle_count_id = c.id
		WHERE ($1 = '' OR c.org_id = $1)
		GROUP BY c.id
		ORDER BY c.started_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cycle counts: %w", err)
	}
	defer rows.Close()

	var list []*repository.CycleCountSummary
	for rows.Next() {
		var s repository.CycleCountSummary
		if err := rows.Scan(
			&s.Count.ID, &s.Count.OrgID, &s.Count.Name, &s.Count.Status, &s.Count.Notes,
			&s.Count.StartedAt, &s.Count.CompletedAt,
			&s.Stats.TotalItems, &s.Stats.CountedItems, &s.Stats.ItemsWithVariance,
		); err != nil {
			return nil, fmt.Errorf("scan cycle count summary: %w", err)
		}
		if s.Stats.TotalItems > 0 {
			s.Stats.Progress = float64(s.Stats.CountedItems) / float64(s.Stats.TotalItems)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza name, status, notes y completed_at.
func (r *CycleCountRepo) Update(count *entity.CycleCount) error {
	query := `
		UPDATE cycle_counts SET name = $2, status = $3, notes = $4, completed_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.Name, count.Status, count.Notes, count.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count: %w", err)
	}
	return nil
}

// Delete borra el conteo; cycle_count_items cae por ON DELETE CASCADE.
func (r *CycleCountRepo) Delete(orgID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cycle_counts WHERE id = $1 AND ($2 = '' OR org_id = $2)`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete cycle count: %w", err)
	}
	return nil
}

const countItemColumns = `i.id, i.cycle_count_id, i.inventory_item_id, i.expected_qty, i.counted_qty, i.variance, i.notes, i.counted_at`

// ListItems devuelve las filas del libro con el resumen del artículo. El LEFT JOIN
// tolera artículos borrados después de la foto: la fila contada persiste sola.
func (r *CycleCountRepo) ListItems(countID string) ([]*entity.CycleCountItem, error) {
	query := `
		SELECT ` + countItemColumns + `,
		       coalesce(v.name, ''), coalesce(v.image_url, ''), coalesce(v.bin, ''), coalesce(v.rack, '')
		FROM cycle_count_items i
		LEFT JOIN inventory_items v ON v.id = i.inventory_item_id
		WHERE i.cycle_count_id = $1
		ORDER BY v.name`
	rows, err := r.q.Query(context.Background(), query, countID)
	if err != nil {
		return nil, fmt.Errorf("list cycle count items: %w", err)
	}
	defer rows.Close()

	var list []*entity.CycleCountItem
	for rows.Next() {
		var it entity.CycleCountItem
		if err := rows.Scan(
			&it.ID, &it.CycleCountID, &it.InventoryItemID, &it.ExpectedQty,
			&it.CountedQty, &it.Variance, &it.Notes, &it.CountedAt,
			&it.ItemName, &it.ItemImageURL, &it.ItemBin, &it.ItemRack,
		); err != nil {
			return nil, fmt.Errorf("scan cycle count item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetItem busca la fila por (conteo, artículo de inventario).
func (r *CycleCountRepo) GetItem(countID, inventoryItemID string) (*entity.CycleCountItem, error) {
	query := `
		SELECT ` + countItemColumns + `,
		       coalesce(v.name, ''), coalesce(v.image_url, ''), coalesce(v.bin, ''), coalesce(v.rack, '')
		FROM cycle_count_items i
		LEFT JOIN inventory_items v ON v.id = i.inventory_item_id
		WHERE i.cycle_count_id = $1 AND i.inventory_item_id = $2`
	var it entity.CycleCountItem
	err := r.q.QueryRow(context.Background(), query, countID, inventoryItemID).Scan(
		&it.ID, &it.CycleCountID, &it.InventoryItemID, &it.ExpectedQty,
		&it.CountedQty, &it.Variance, &it.Notes, &it.CountedAt,
		&it.ItemName, &it.ItemImageURL, &it.ItemBin, &it.ItemRack,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count item: %w", err)
	}
	return &it, nil
}

// UpdateItemCount sobrescribe el conteo físico de una fila. expected_qty jamás se toca.
func (r *CycleCountRepo) UpdateItemCount(item *entity.CycleCountItem) error {
	query := `
		UPDATE cycle_count_items
		SET counted_qty = $2, variance = $3, notes = $4, counted_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CountedQty, item.Variance, item.Notes, item.CountedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count item: %w", err)
	}
	return nil
}
