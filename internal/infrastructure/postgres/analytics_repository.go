package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo lecturas agregadas para el dashboard. Nada se materializa:
// cada llamada recalcula contra las tablas operativas.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Dashboard devuelve los contadores del panel para el tenant.
func (r *AnalyticsRepo) Dashboard(orgID string) (*repository.DashboardCounts, error) {
	var c repository.DashboardCounts

	query := `
		SELECT
			(SELECT count(*) FROM inventory_items
				WHERE ($1 = '' OR org_id = $1) AND status = 'pending'),
			(SELECT count(*) FROM inventory_items
				WHERE ($1 = '' OR org_id = $1) AND par_level IS NOT NULL AND quantity < par_level),
			(SELECT count(*) FROM cycle_counts
				WHERE ($1 = '' OR org_id = $1) AND status = 'in_progress'),
			(SELECT count(*) FROM orders
				WHERE ($1 = '' OR org_id = $1) AND status = 'draft')`
	err := r.q.QueryRow(context.Background(), query, orgID).
		Scan(&c.PendingItems, &c.ItemsBelowPar, &c.OpenCycleCounts, &c.DraftOrders)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	acc, err := r.lastCountAccuracy(orgID)
	if err != nil {
		return nil, err
	}
	c.LastCountAccuracy = acc
	return &c, nil
}

// lastCountAccuracy proporción de filas contadas con varianza cero en el
// último conteo cerrado; nil si el tenant no tiene conteos cerrados o el
// conteo no tuvo filas contadas.
func (r *AnalyticsRepo) lastCountAccuracy(orgID string) (*float64, error) {
	query := `
		SELECT count(i.counted_qty),
		       count(*) FILTER (WHERE i.variance = 0)
		FROM cycle_count_items i
		WHERE i.cycle_count_id = (
			SELECT id FROM cycle_counts
			WHERE ($1 = '' OR org_id = $1) AND status = 'completed'
			ORDER BY completed_at DESC NULLS LAST
			LIMIT 1
		)`
	var counted, exact int
	err := r.q.QueryRow(context.Background(), query, orgID).Scan(&counted, &exact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last count accuracy: %w", err)
	}
	if counted == 0 {
		return nil, nil
	}
	acc := float64(exact) / float64(counted)
	return &acc, nil
}
