package entity

import (
	"time"

	"github.com/jhoicas/Stockio-api/internal/domain"
)

// CountStatus estado de un conteo cíclico. in_progress -> completed es una
// transición terminal de un solo disparo; cancelled es la alternativa terminal.
type CountStatus string

const (
	CountStatusInProgress CountStatus = "in_progress"
	CountStatusCompleted  CountStatus = "completed"
	CountStatusCancelled  CountStatus = "cancelled"
)

// ParseCountStatus valida un status de conteo recibido en la frontera.
func ParseCountStatus(s string) (CountStatus, error) {
	switch CountStatus(s) {
	case CountStatusInProgress, CountStatusCompleted, CountStatusCancelled:
		return CountStatus(s), nil
	}
	return "", domain.ErrInvalidInput
}

// CycleCount conteo cíclico: foto puntual de las cantidades esperadas de todos los
// artículos en status pending al momento de crearlo. El conjunto de ítems queda
// congelado en la creación; los artículos agregados después no entran retroactivamente.
type CycleCount struct {
	ID          string
	OrgID       string
	Name        string
	Status      CountStatus
	Notes       string
	StartedAt   time.Time
	CompletedAt *time.Time // nil hasta cerrar el conteo
}

// CycleCountItem fila del libro de conteo por artículo. ExpectedQty se captura
// de InventoryItem.Quantity al crear el conteo y es inmutable desde entonces.
// CountedQty, Variance y CountedAt son nil/no-nil juntos: nil significa "aún sin contar".
type CycleCountItem struct {
	ID              string
	CycleCountID    string
	InventoryItemID string
	ExpectedQty     int
	CountedQty      *int
	Variance        *int // siempre CountedQty - ExpectedQty cuando CountedQty no es nil
	Notes           *string
	CountedAt       *time.Time

	// Resumen del artículo para presentación (se llena en lecturas con join).
	ItemName     string
	ItemImageURL string
	ItemBin      string
	ItemRack     string
}

// Counted indica si la fila ya tiene un conteo físico registrado.
func (i *CycleCountItem) Counted() bool { return i.CountedQty != nil }

// CountStats estadísticas derivadas de un conteo. Nunca se almacenan en la fila
// del conteo: se recalculan en cada lectura a partir de las filas por artículo.
type CountStats struct {
	TotalItems        int
	CountedItems      int
	ItemsWithVariance int
	Progress          float64 // CountedItems / TotalItems; 0 si no hay ítems
}

// DeriveCountStats recalcula las estadísticas desde el conjunto de filas autoritativo.
func DeriveCountStats(items []*CycleCountItem) CountStats {
	s := CountStats{TotalItems: len(items)}
	for _, it := range items {
		if !it.Counted() {
			continue
		}
		s.CountedItems++
		if it.Variance != nil && *it.Variance != 0 {
			s.ItemsWithVariance++
		}
	}
	if s.TotalItems > 0 {
		s.Progress = float64(s.CountedItems) / float64(s.TotalItems)
	}
	return s
}
