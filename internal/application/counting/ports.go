package counting

import (
	"context"

	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que foto inicial, registro y cierre de conteos sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		countRepo repository.CycleCountRepository,
		invRepo repository.InventoryRepository,
	) error) error
}
