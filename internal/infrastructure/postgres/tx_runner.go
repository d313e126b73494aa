package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/prep"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// Verificación en tiempo de compilación de los puertos de transacción.
var (
	_ counting.TxRunner     = (*TxRunner)(nil)
	_ prep.TxRunner         = (*TxRunner)(nil)
	_ usecase.OrderTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de conteos e inventario (ciclo del conteo cíclico)
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	countRepo repository.CycleCountRepository,
	invRepo repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	countRepo := NewCycleCountRepository(tx)
	invRepo := NewInventoryRepository(tx)

	if err := fn(countRepo, invRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPrep inicia una transacción con el repo de preparación (bitácora + nivel).
func (r *TxRunner) RunPrep(ctx context.Context, fn func(prepRepo repository.PrepRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPrepRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con repos de órdenes e inventario (recepción de órdenes).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	invRepo repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	invRepo := NewInventoryRepository(tx)

	if err := fn(orderRepo, invRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
