package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Stockio-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvRepo struct {
	items map[string]*entity.InventoryItem
}

func (f *fakeInvRepo) Create(item *entity.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInvRepo) GetByID(orgID, id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return it, nil
}

func (f *fakeInvRepo) List(orgID string, status entity.ItemStatus, limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInvRepo) ListByStatus(orgID string, status entity.ItemStatus) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInvRepo) Update(item *entity.InventoryItem) error { return nil }

func (f *fakeInvRepo) UpdateQuantity(itemID string, quantity int) error {
	f.items[itemID].Quantity = quantity
	return nil
}

func (f *fakeInvRepo) IncrementQuantity(itemID string, delta int) error {
	f.items[itemID].Quantity += delta
	return nil
}

func (f *fakeInvRepo) Delete(orgID, id string) error { return nil }

type fakeCountRepo struct {
	counts map[string]*entity.CycleCount
	rows   map[string][]*entity.CycleCountItem // countID -> filas
	inv    *fakeInvRepo
}

func newFakeCountRepo(inv *fakeInvRepo) *fakeCountRepo {
	return &fakeCountRepo{
		counts: map[string]*entity.CycleCount{},
		rows:   map[string][]*entity.CycleCountItem{},
		inv:    inv,
	}
}

func (f *fakeCountRepo) Create(count *entity.CycleCount) error {
	f.counts[count.ID] = count
	return nil
}

func (f *fakeCountRepo) BulkInsertItems(items []*entity.CycleCountItem) error {
	for _, it := range items {
		f.rows[it.CycleCountID] = append(f.rows[it.CycleCountID], it)
	}
	return nil
}

func (f *fakeCountRepo) GetByID(orgID, id string) (*entity.CycleCount, error) {
	c, ok := f.counts[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCountRepo) GetForUpdate(orgID, id string) (*entity.CycleCount, error) {
	return f.GetByID(orgID, id)
}

func (f *fakeCountRepo) ListWithStats(orgID string, limit, offset int) ([]*repository.CycleCountSummary, error) {
	var out []*repository.CycleCountSummary
	for _, c := range f.counts {
		out = append(out, &repository.CycleCountSummary{
			Count: *c,
			Stats: entity.DeriveCountStats(f.rows[c.ID]),
		})
	}
	return out, nil
}

func (f *fakeCountRepo) Update(count *entity.CycleCount) error {
	f.counts[count.ID] = count
	return nil
}

func (f *fakeCountRepo) Delete(orgID, id string) error {
	delete(f.counts, id)
	delete(f.rows, id)
	return nil
}

func (f *fakeCountRepo) ListItems(countID string) ([]*entity.CycleCountItem, error) {
	out := f.rows[countID]
	for _, r := range out {
		if it := f.inv.items[r.InventoryItemID]; it != nil {
			r.ItemName = it.Name
			r.ItemBin = it.Bin
			r.ItemRack = it.Rack
		}
	}
	return out, nil
}

func (f *fakeCountRepo) GetItem(countID, inventoryItemID string) (*entity.CycleCountItem, error) {
	for _, r := range f.rows[countID] {
		if r.InventoryItemID == inventoryItemID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeCountRepo) UpdateItemCount(item *entity.CycleCountItem) error {
	for i, r := range f.rows[item.CycleCountID] {
		if r.ID == item.ID {
			f.rows[item.CycleCountID][i] = item
		}
	}
	return nil
}

type fakeCountTxRunner struct {
	countRepo *fakeCountRepo
	invRepo   *fakeInvRepo
}

func (f *fakeCountTxRunner) Run(ctx context.Context, fn func(repository.CycleCountRepository, repository.InventoryRepository) error) error {
	return fn(f.countRepo, f.invRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildCountApp app Fiber con las rutas de conteo y un inventario semilla.
func buildCountApp() *fiber.App {
	invRepo := &fakeInvRepo{items: map[string]*entity.InventoryItem{
		"item-1": {ID: "item-1", Name: "Aceite", Status: entity.ItemStatusPending, Quantity: 10, Bin: "B2"},
	}}
	countRepo := newFakeCountRepo(invRepo)
	uc := counting.NewCycleCountUseCase(&fakeCountTxRunner{countRepo: countRepo, invRepo: invRepo}, countRepo, invRepo)
	h := apphttp.NewCycleCountHandler(uc)

	app := fiber.New()
	app.Post("/api/cycle-counts", h.Start)
	app.Get("/api/cycle-counts/:id", h.GetByID)
	app.Delete("/api/cycle-counts/:id", h.Delete)
	app.Post("/api/cycle-counts/:id/items/:itemId/count", h.RecordCount)
	app.Post("/api/cycle-counts/:id/complete", h.Complete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeCount(t *testing.T, resp *http.Response) dto.CycleCountResponse {
	t.Helper()
	var out dto.CycleCountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func countOf(qty int) dto.RecordCountRequest {
	return dto.RecordCountRequest{CountedQty: &qty}
}

func startCount(t *testing.T, app *fiber.App) dto.CycleCountResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/cycle-counts", dto.StartCycleCountRequest{Name: "Conteo semanal"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeCount(t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de las rutas de conteo
// ──────────────────────────────────────────────────────────────────────────────

func TestCycleCountRoutes_StartDevuelve201ConFoto(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	assert.Equal(t, "in_progress", count.Status)
	assert.Equal(t, 1, count.Stats.TotalItems)
	assert.Zero(t, count.Stats.CountedItems)
}

func TestCycleCountRoutes_RecordDevuelveVarianza(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/cycle-counts/%s/items/item-1/count", count.ID),
		countOf(7))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var row dto.CycleCountItemDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&row))
	require.NotNil(t, row.Variance)
	assert.Equal(t, -3, *row.Variance, "varianza = 7 contados - 10 esperados")
}

func TestCycleCountRoutes_ArticuloFueraDeLaFotoEs404(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/cycle-counts/%s/items/no-existe/count", count.ID),
		countOf(5))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCycleCountRoutes_CantidadNegativaEs400(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/cycle-counts/%s/items/item-1/count", count.ID),
		countOf(-1))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Un body sin countedQty no es un conteo de cero: se rechaza antes de tocar la fila.
func TestCycleCountRoutes_CuerpoSinCountedQtyEs400(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/cycle-counts/%s/items/item-1/count", count.ID),
		map[string]string{"notes": "sin cantidad"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestCycleCountRoutes_DeleteConfirmaCon200(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)

	resp := doJSON(t, app, http.MethodDelete, "/api/cycle-counts/"+count.ID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["message"])

	// El conteo ya no existe.
	resp = doJSON(t, app, http.MethodGet, "/api/cycle-counts/"+count.ID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCycleCountRoutes_SegundoCierreEs400(t *testing.T) {
	app := buildCountApp()
	count := startCount(t, app)
	path := fmt.Sprintf("/api/cycle-counts/%s/complete", count.ID)

	resp := doJSON(t, app, http.MethodPost, path, dto.CompleteCycleCountRequest{ApplyChanges: false})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, path, dto.CompleteCycleCountRequest{ApplyChanges: false})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "COUNT_NOT_OPEN", errBody.Code)
}
