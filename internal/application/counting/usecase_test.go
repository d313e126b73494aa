package counting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeInventoryRepo almacén en memoria de artículos.
type fakeInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[string]*entity.InventoryItem{}}
}

func (f *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) GetByID(orgID, id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok || (orgID != "" && it.OrgID != orgID) {
		return nil, nil
	}
	return it, nil
}

func (f *fakeInventoryRepo) List(orgID string, status entity.ItemStatus, limit, offset int) ([]*entity.InventoryItem, error) {
	return f.ListByStatus(orgID, status)
}

func (f *fakeInventoryRepo) ListByStatus(orgID string, status entity.ItemStatus) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.items {
		if orgID != "" && it.OrgID != orgID {
			continue
		}
		if status != "" && it.Status != status {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeInventoryRepo) Update(item *entity.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) UpdateQuantity(itemID string, quantity int) error {
	if it, ok := f.items[itemID]; ok {
		it.Quantity = quantity
	}
	return nil
}

func (f *fakeInventoryRepo) IncrementQuantity(itemID string, delta int) error {
	if it, ok := f.items[itemID]; ok {
		it.Quantity += delta
	}
	return nil
}

func (f *fakeInventoryRepo) Delete(orgID, id string) error {
	delete(f.items, id)
	return nil
}

// fakeCountRepo almacén en memoria de conteos y su libro por artículo. Emula
// el join de lectura llenando ItemName desde el repo de inventario.
type fakeCountRepo struct {
	counts map[string]*entity.CycleCount
	rows   map[string][]*entity.CycleCountItem // countID -> filas
	inv    *fakeInventoryRepo
}

func newFakeCountRepo(inv *fakeInventoryRepo) *fakeCountRepo {
	return &fakeCountRepo{
		counts: map[string]*entity.CycleCount{},
		rows:   map[string][]*entity.CycleCountItem{},
		inv:    inv,
	}
}

func (f *fakeCountRepo) Create(count *entity.CycleCount) error {
	c := *count
	f.counts[count.ID] = &c
	return nil
}

func (f *fakeCountRepo) BulkInsertItems(items []*entity.CycleCountItem) error {
	for _, it := range items {
		row := *it
		f.rows[it.CycleCountID] = append(f.rows[it.CycleCountID], &row)
	}
	return nil
}

func (f *fakeCountRepo) GetByID(orgID, id string) (*entity.CycleCount, error) {
	c, ok := f.counts[id]
	if !ok || (orgID != "" && c.OrgID != orgID) {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCountRepo) GetForUpdate(orgID, id string) (*entity.CycleCount, error) {
	return f.GetByID(orgID, id)
}

func (f *fakeCountRepo) ListWithStats(orgID string, limit, offset int) ([]*repository.CycleCountSummary, error) {
	var out []*repository.CycleCountSummary
	for id, c := range f.counts {
		if orgID != "" && c.OrgID != orgID {
			continue
		}
		out = append(out, &repository.CycleCountSummary{
			Count: *c,
			Stats: entity.DeriveCountStats(f.rows[id]),
		})
	}
	return out, nil
}

func (f *fakeCountRepo) Update(count *entity.CycleCount) error {
	c := *count
	f.counts[count.ID] = &c
	return nil
}

func (f *fakeCountRepo) Delete(orgID, id string) error {
	delete(f.counts, id)
	delete(f.rows, id)
	return nil
}

func (f *fakeCountRepo) ListItems(countID string) ([]*entity.CycleCountItem, error) {
	for _, row := range f.rows[countID] {
		if it, ok := f.inv.items[row.InventoryItemID]; ok {
			row.ItemName = it.Name
			row.ItemImageURL = it.ImageURL
			row.ItemBin = it.Bin
			row.ItemRack = it.Rack
		}
	}
	return f.rows[countID], nil
}

func (f *fakeCountRepo) GetItem(countID, inventoryItemID string) (*entity.CycleCountItem, error) {
	for _, row := range f.rows[countID] {
		if row.InventoryItemID == inventoryItemID {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeCountRepo) UpdateItemCount(item *entity.CycleCountItem) error {
	for i, row := range f.rows[item.CycleCountID] {
		if row.ID == item.ID {
			f.rows[item.CycleCountID][i] = item
			return nil
		}
	}
	return nil
}

// fakeTxRunner ejecuta la función directamente contra los fakes; no hay tx real.
type fakeTxRunner struct {
	countRepo *fakeCountRepo
	invRepo   *fakeInventoryRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.CycleCountRepository, repository.InventoryRepository) error) error {
	return fn(f.countRepo, f.invRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOrg = "org-1"

func seedItem(repo *fakeInventoryRepo, id, name string, qty int, status entity.ItemStatus) {
	repo.items[id] = &entity.InventoryItem{
		ID:       id,
		OrgID:    testOrg,
		Name:     name,
		Status:   status,
		Quantity: qty,
	}
}

func buildUseCase(t *testing.T) (*counting.CycleCountUseCase, *fakeCountRepo, *fakeInventoryRepo) {
	t.Helper()
	invRepo := newFakeInventoryRepo()
	countRepo := newFakeCountRepo(invRepo)
	tx := &fakeTxRunner{countRepo: countRepo, invRepo: invRepo}
	return counting.NewCycleCountUseCase(tx, countRepo, invRepo), countRepo, invRepo
}

func startCount(t *testing.T, uc *counting.CycleCountUseCase) *dto.CycleCountResponse {
	t.Helper()
	count, err := uc.StartCycleCount(context.Background(), testOrg, dto.StartCycleCountRequest{Name: "conteo semanal"})
	require.NoError(t, err)
	return count
}

func countOf(qty int) dto.RecordCountRequest {
	return dto.RecordCountRequest{CountedQty: &qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// StartCycleCount — foto inicial
// ──────────────────────────────────────────────────────────────────────────────

// La foto captura un artículo por cada pending con su cantidad del momento;
// los artículos sold/completed quedan fuera.
func TestStartCycleCount_FotoSoloDePendientes(t *testing.T) {
	uc, countRepo, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	seedItem(invRepo, "b", "Harina", 5, entity.ItemStatusPending)
	seedItem(invRepo, "c", "Vendido", 99, entity.ItemStatusSold)

	count := startCount(t, uc)

	assert.Equal(t, "in_progress", count.Status)
	assert.Equal(t, 2, count.Stats.TotalItems)
	assert.Nil(t, count.CompletedAt)

	rows, _ := countRepo.ListItems(count.ID)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.False(t, row.Counted(), "las filas nacen sin contar")
		assert.Nil(t, row.Variance)
	}
}

// La cantidad esperada queda congelada: mover el inventario después de iniciar
// no cambia lo que la fila espera.
func TestStartCycleCount_ExpectedQtyCongelado(t *testing.T) {
	uc, countRepo, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)

	count := startCount(t, uc)

	// El inventario vivo cambia después de la foto.
	require.NoError(t, invRepo.UpdateQuantity("a", 42))

	rows, _ := countRepo.ListItems(count.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].ExpectedQty, "expected_qty no sigue al inventario vivo")
}

// Cero artículos pending no es error: el conteo nace vacío.
func TestStartCycleCount_SinPendientesNaceVacio(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	count := startCount(t, uc)

	assert.Equal(t, 0, count.Stats.TotalItems)
	assert.Equal(t, float64(0), count.Stats.Progress)
}

func TestStartCycleCount_NombreVacioEsInvalido(t *testing.T) {
	uc, _, _ := buildUseCase(t)
	_, err := uc.StartCycleCount(context.Background(), testOrg, dto.StartCycleCountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordCount — registro con varianza
// ──────────────────────────────────────────────────────────────────────────────

// variance = countedQty - expectedQty, y los tres campos (counted, variance,
// countedAt) se llenan juntos.
func TestRecordCount_VarianzaContraExpectedCongelado(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	row, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(7))
	require.NoError(t, err)

	require.NotNil(t, row.CountedQty)
	require.NotNil(t, row.Variance)
	require.NotNil(t, row.CountedAt)
	assert.Equal(t, 7, *row.CountedQty)
	assert.Equal(t, -3, *row.Variance)
}

// Registrar no toca el inventario vivo: solo el cierre con applyChanges lo hace.
func TestRecordCount_NoTocaInventario(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(3))
	require.NoError(t, err)

	item, _ := invRepo.GetByID(testOrg, "a")
	assert.Equal(t, 10, item.Quantity)
}

// Semántica de sobrescritura: el segundo registro reemplaza al primero.
func TestRecordCount_SegundoRegistroSobrescribe(t *testing.T) {
	uc, countRepo, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(7))
	require.NoError(t, err)
	row, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(12))
	require.NoError(t, err)

	assert.Equal(t, 12, *row.CountedQty)
	assert.Equal(t, 2, *row.Variance)

	rows, _ := countRepo.ListItems(count.ID)
	require.Len(t, rows, 1, "no se guarda historial de conteos")
}

// Omitir countedQty en el body no equivale a contar cero: es entrada inválida.
func TestRecordCount_CountedQtyOmitidoEsInvalido(t *testing.T) {
	uc, countRepo, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", dto.RecordCountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rows, _ := countRepo.ListItems(count.ID)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Counted(), "la fila sigue sin contar")
}

func TestRecordCount_CantidadNegativaEsInvalida(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cero sí es un conteo válido (estante vacío), distinto de "sin contar".
func TestRecordCount_CeroEsConteoValido(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 4, entity.ItemStatusPending)
	count := startCount(t, uc)

	row, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(0))
	require.NoError(t, err)
	assert.Equal(t, 0, *row.CountedQty)
	assert.Equal(t, -4, *row.Variance)
}

func TestRecordCount_ArticuloFueraDeLaFotoEs404(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	// "z" nunca formó parte de la foto inicial.
	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "z", countOf(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordCount_ConteoCerradoRechaza(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.CompleteCycleCount(context.Background(), testOrg, count.ID, false)
	require.NoError(t, err)

	_, err = uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(5))
	assert.ErrorIs(t, err, domain.ErrCountNotOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteCycleCount — cierre y reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de extremo a extremo: A esperado 10 contado 10, B esperado 5
// contado 3, C sin contar. Con applyChanges=true solo B cambia y C conserva
// su cantidad previa.
func TestCompleteCycleCount_AplicaSoloFilasContadas(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	seedItem(invRepo, "b", "Harina", 5, entity.ItemStatusPending)
	seedItem(invRepo, "c", "Sal", 8, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(10))
	require.NoError(t, err)
	_, err = uc.RecordCount(context.Background(), testOrg, count.ID, "b", countOf(3))
	require.NoError(t, err)

	closed, err := uc.CompleteCycleCount(context.Background(), testOrg, count.ID, true)
	require.NoError(t, err)

	assert.Equal(t, "completed", closed.Status)
	require.NotNil(t, closed.CompletedAt)
	assert.Equal(t, 3, closed.Stats.TotalItems)
	assert.Equal(t, 2, closed.Stats.CountedItems)
	assert.Equal(t, 1, closed.Stats.ItemsWithVariance, "solo B tiene varianza distinta de cero")

	itemA, _ := invRepo.GetByID(testOrg, "a")
	itemB, _ := invRepo.GetByID(testOrg, "b")
	itemC, _ := invRepo.GetByID(testOrg, "c")
	assert.Equal(t, 10, itemA.Quantity)
	assert.Equal(t, 3, itemB.Quantity, "B se reconcilia a la cantidad contada")
	assert.Equal(t, 8, itemC.Quantity, "C sin contar conserva su cantidad previa")
}

// Con applyChanges=false el conteo se cierra solo como registro.
func TestCompleteCycleCount_SinAplicarNoTocaInventario(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(2))
	require.NoError(t, err)

	closed, err := uc.CompleteCycleCount(context.Background(), testOrg, count.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "completed", closed.Status)

	item, _ := invRepo.GetByID(testOrg, "a")
	assert.Equal(t, 10, item.Quantity, "sin applyChanges el inventario no se mueve")
}

// La transición es terminal: el segundo cierre falla aunque cambie applyChanges.
func TestCompleteCycleCount_SegundoCierreRechaza(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.CompleteCycleCount(context.Background(), testOrg, count.ID, false)
	require.NoError(t, err)

	_, err = uc.CompleteCycleCount(context.Background(), testOrg, count.ID, true)
	assert.ErrorIs(t, err, domain.ErrCountNotOpen)
}

func TestCompleteCycleCount_ConteoInexistenteEs404(t *testing.T) {
	uc, _, _ := buildUseCase(t)
	_, err := uc.CompleteCycleCount(context.Background(), testOrg, "no-existe", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas — detalle, listado y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCycleCount_OrdenaSinContarPrimero(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	seedItem(invRepo, "b", "Harina", 5, entity.ItemStatusPending)
	seedItem(invRepo, "c", "Sal", 8, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(10))
	require.NoError(t, err)

	detail, err := uc.GetCycleCount(context.Background(), testOrg, count.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 3)

	// Sin contar primero (Harina, Sal por nombre), el contado (Aceite) al final.
	assert.Nil(t, detail.Items[0].CountedQty)
	assert.Nil(t, detail.Items[1].CountedQty)
	assert.Equal(t, "Harina", detail.Items[0].ItemName)
	assert.Equal(t, "Sal", detail.Items[1].ItemName)
	assert.Equal(t, "Aceite", detail.Items[2].ItemName)
}

func TestGetCycleCount_StatsDerivadas(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	seedItem(invRepo, "b", "Harina", 5, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.RecordCount(context.Background(), testOrg, count.ID, "a", countOf(9))
	require.NoError(t, err)

	detail, err := uc.GetCycleCount(context.Background(), testOrg, count.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Stats.TotalItems)
	assert.Equal(t, 1, detail.Stats.CountedItems)
	assert.Equal(t, 1, detail.Stats.ItemsWithVariance)
	assert.InDelta(t, 0.5, detail.Stats.Progress, 0.0001)
}

func TestListCycleCounts_IncluyeStats(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	startCount(t, uc)

	list, err := uc.ListCycleCounts(context.Background(), testOrg, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Stats.TotalItems)
	assert.Nil(t, list[0].Items, "el listado no carga las filas")
}

func TestUpdateCycleCount_StatusDesconocidoEsInvalido(t *testing.T) {
	uc, _, _ := buildUseCase(t)
	count := startCount(t, uc)

	badStatus := "archivado"
	_, err := uc.UpdateCycleCount(context.Background(), testOrg, count.ID, dto.UpdateCycleCountRequest{Status: &badStatus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// completed y cancelled son terminales: el PATCH no reabre un conteo cerrado
// (reabrirlo borraría completedAt y rompería el cierre de un solo disparo).
func TestUpdateCycleCount_NoReabreConteoCerrado(t *testing.T) {
	uc, _, invRepo := buildUseCase(t)
	seedItem(invRepo, "a", "Aceite", 10, entity.ItemStatusPending)
	count := startCount(t, uc)

	_, err := uc.CompleteCycleCount(context.Background(), testOrg, count.ID, false)
	require.NoError(t, err)

	reopen := "in_progress"
	_, err = uc.UpdateCycleCount(context.Background(), testOrg, count.ID, dto.UpdateCycleCountRequest{Status: &reopen})
	assert.ErrorIs(t, err, domain.ErrCountNotOpen)

	detail, err := uc.GetCycleCount(context.Background(), testOrg, count.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", detail.Status)
	assert.NotNil(t, detail.CompletedAt)
}

// Cancelar por PATCH desde in_progress sigue permitido y sella completedAt.
func TestUpdateCycleCount_CancelaDesdeInProgress(t *testing.T) {
	uc, _, _ := buildUseCase(t)
	count := startCount(t, uc)

	cancelled := "cancelled"
	updated, err := uc.UpdateCycleCount(context.Background(), testOrg, count.ID, dto.UpdateCycleCountRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestDeleteCycleCount_InexistenteEs404(t *testing.T) {
	uc, _, _ := buildUseCase(t)
	err := uc.DeleteCycleCount(context.Background(), testOrg, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
