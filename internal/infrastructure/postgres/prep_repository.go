package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

var _ repository.PrepRepository = (*PrepRepo)(nil)

// PrepRepo implementación del puerto PrepRepository sobre PostgreSQL (usable con pool o tx).
type PrepRepo struct {
	q Querier
}

// NewPrepRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrepRepository(q Querier) *PrepRepo {
	return &PrepRepo{q: q}
}

const prepItemColumns = `id, org_id, name, unit, current_level, par_level, created_at, updated_at`

func scanPrepItem(row pgx.Row) (*entity.PrepItem, error) {
	var p entity.PrepItem
	err := row.Scan(&p.ID, &p.OrgID, &p.Name, &p.Unit, &p.CurrentLevel, &p.ParLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateItem persiste un ítem de preparación.
func (r *PrepRepo) CreateItem(item *entity.PrepItem) error {
	query := `
		INSERT INTO prep_items (` + prepItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrgID, item.Name, item.Unit, item.CurrentLevel, item.ParLevel, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prep item: %w", err)
	}
	return nil
}

// GetItemByID obtiene un ítem dentro del scope del tenant.
func (r *PrepRepo) GetItemByID(orgID, id string) (*entity.PrepItem, error) {
	query := `SELECT ` + prepItemColumns + ` FROM prep_items WHERE id = $1 AND ($2 = '' OR org_id = $2)`
	p, err := scanPrepItem(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prep item: %w", err)
	}
	return p, nil
}

// GetItemForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *PrepRepo) GetItemForUpdate(orgID, id string) (*entity.PrepItem, error) {
	query := `
		SELECT ` + prepItemColumns + ` FROM prep_items
		WHERE id = $1 AND ($2 = '' OR org_id = $2)
		FOR UPDATE`
	p, err := scanPrepItem(r.q.QueryRow(context.Background(), query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prep item for update: %w", err)
	}
	return p, nil
}

// ListItems lista los ítems del tenant por nombre.
func (r *PrepRepo) ListItems(orgID string) ([]*entity.PrepItem, error) {
	query := `SELECT ` + prepItemColumns + ` FROM prep_items WHERE ($1 = '' OR org_id = $1) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list prep items: %w", err)
	}
	defer rows.Close()

	var list []*entity.PrepItem
	for rows.Next() {
		var p entity.PrepItem
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Name, &p.Unit, &p.CurrentLevel, &p.ParLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prep item: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateItem actualiza name, unit y par_level (current_level va por UpdateLevel).
func (r *PrepRepo) UpdateItem(item *entity.PrepItem) error {
	query := `
		UPDATE prep_items SET name = $2, unit = $3, par_level = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Unit, item.ParLevel, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update prep item: %w", err)
	}
	return nil
}

// UpdateLevel escribe solo current_level (junto con CreateLog en una tx).
func (r *PrepRepo) UpdateLevel(itemID string, level int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE prep_items SET current_level = $2, updated_at = now() WHERE id = $1`,
		itemID, level,
	)
	if err != nil {
		return fmt.Errorf("update prep level: %w", err)
	}
	return nil
}

// DeleteItem borra el ítem; prep_logs cae por ON DELETE CASCADE.
func (r *PrepRepo) DeleteItem(orgID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM prep_items WHERE id = $1 AND ($2 = '' OR org_id = $2)`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete prep item: %w", err)
	}
	return nil
}

// CreateLog inserta un evento en la bitácora. Append-only: no hay update ni delete.
func (r *PrepRepo) CreateLog(log *entity.PrepLog) error {
	query := `
		INSERT INTO prep_logs (id, prep_item_id, quantity, notes, user_id, prepped_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.PrepItemID, log.Quantity, log.Notes, log.UserID, log.PreppedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prep log: %w", err)
	}
	return nil
}

// ListLogs bitácora de un ítem, más reciente primero.
func (r *PrepRepo) ListLogs(prepItemID string, limit int) ([]*entity.PrepLog, error) {
	query := `
		SELECT id, prep_item_id, quantity, notes, user_id, prepped_at
		FROM prep_logs WHERE prep_item_id = $1
		ORDER BY prepped_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, prepItemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list prep logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.PrepLog
	for rows.Next() {
		var l entity.PrepLog
		if err := rows.Scan(&l.ID, &l.PrepItemID, &l.Quantity, &l.Notes, &l.UserID, &l.PreppedAt); err != nil {
			return nil, fmt.Errorf("scan prep log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
