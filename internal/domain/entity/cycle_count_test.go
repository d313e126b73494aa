package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
)

func intPtr(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// DeriveCountStats
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveCountStats_ConteoVacio(t *testing.T) {
	stats := entity.DeriveCountStats(nil)
	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, float64(0), stats.Progress, "sin ítems el avance es 0, no NaN")
}

func TestDeriveCountStats_MezclaDeFilas(t *testing.T) {
	rows := []*entity.CycleCountItem{
		{ExpectedQty: 10, CountedQty: intPtr(10), Variance: intPtr(0)},
		{ExpectedQty: 5, CountedQty: intPtr(3), Variance: intPtr(-2)},
		{ExpectedQty: 8}, // sin contar
	}
	stats := entity.DeriveCountStats(rows)

	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 2, stats.CountedItems)
	assert.Equal(t, 1, stats.ItemsWithVariance, "la varianza cero no cuenta como discrepancia")
	assert.InDelta(t, 2.0/3.0, stats.Progress, 0.0001)
}

func TestCycleCountItem_Counted(t *testing.T) {
	sinContar := &entity.CycleCountItem{ExpectedQty: 4}
	contadoCero := &entity.CycleCountItem{ExpectedQty: 4, CountedQty: intPtr(0)}

	assert.False(t, sinContar.Counted())
	assert.True(t, contadoCero.Counted(), "cero contado es distinto de sin contar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Enums de frontera
// ──────────────────────────────────────────────────────────────────────────────

func TestParseCountStatus(t *testing.T) {
	for _, valid := range []string{"in_progress", "completed", "cancelled"} {
		st, err := entity.ParseCountStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, entity.CountStatus(valid), st)
	}
	_, err := entity.ParseCountStatus("archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseItemStatus(t *testing.T) {
	for _, valid := range []string{"pending", "completed", "sold"} {
		_, err := entity.ParseItemStatus(valid)
		assert.NoError(t, err)
	}
	_, err := entity.ParseItemStatus("en-venta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParsePrepUnit(t *testing.T) {
	for _, valid := range []string{"each", "batch", "tray", "quart", "pound"} {
		_, err := entity.ParsePrepUnit(valid)
		assert.NoError(t, err)
	}
	_, err := entity.ParsePrepUnit("litro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"draft", "submitted", "received", "cancelled"} {
		_, err := entity.ParseOrderStatus(valid)
		assert.NoError(t, err)
	}
	_, err := entity.ParseOrderStatus("pagada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivados de prep y órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepItem_Needed(t *testing.T) {
	bajo := &entity.PrepItem{CurrentLevel: 2, ParLevel: 6}
	alPar := &entity.PrepItem{CurrentLevel: 6, ParLevel: 6}
	sobre := &entity.PrepItem{CurrentLevel: 9, ParLevel: 6}

	assert.Equal(t, 4, bajo.Needed())
	assert.Equal(t, 0, alPar.Needed())
	assert.Equal(t, 0, sobre.Needed(), "por encima del par el faltante nunca es negativo")
}

func TestOrder_TotalDerivado(t *testing.T) {
	order := &entity.Order{
		Items: []*entity.OrderItem{
			{Quantity: 3, UnitCost: decimal.NewFromFloat(2.50)},
			{Quantity: 2, UnitCost: decimal.NewFromFloat(10)},
		},
	}
	assert.True(t, order.Total().Equal(decimal.NewFromFloat(27.50)),
		"total = 3*2.50 + 2*10 = 27.50, got %s", order.Total())
}

func TestOrder_TotalSinLineas(t *testing.T) {
	order := &entity.Order{}
	assert.True(t, order.Total().IsZero())
}
