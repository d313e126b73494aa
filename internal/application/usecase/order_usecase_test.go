package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.Order{}}
}

func (f *fakeOrderRepo) Create(order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(orgID, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok || (orgID != "" && o.OrgID != orgID) {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrderRepo) GetForUpdate(orgID, id string) (*entity.Order, error) {
	return f.GetByID(orgID, id)
}

func (f *fakeOrderRepo) List(orgID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if orgID != "" && o.OrgID != orgID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) Delete(orgID, id string) error {
	delete(f.orders, id)
	return nil
}

type fakeInvQtyRepo struct {
	qty map[string]int
}

func (f *fakeInvQtyRepo) Create(item *entity.InventoryItem) error { return nil }
func (f *fakeInvQtyRepo) GetByID(orgID, id string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInvQtyRepo) List(orgID string, status entity.ItemStatus, limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInvQtyRepo) ListByStatus(orgID string, status entity.ItemStatus) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInvQtyRepo) Update(item *entity.InventoryItem) error { return nil }
func (f *fakeInvQtyRepo) UpdateQuantity(itemID string, quantity int) error {
	f.qty[itemID] = quantity
	return nil
}
func (f *fakeInvQtyRepo) IncrementQuantity(itemID string, delta int) error {
	f.qty[itemID] += delta
	return nil
}
func (f *fakeInvQtyRepo) Delete(orgID, id string) error { return nil }

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func (f *fakeVendorRepo) Create(vendor *entity.Vendor) error {
	f.vendors[vendor.ID] = vendor
	return nil
}
func (f *fakeVendorRepo) GetByID(orgID, id string) (*entity.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, nil
	}
	return v, nil
}
func (f *fakeVendorRepo) GetByName(orgID, name string) (*entity.Vendor, error) {
	for _, v := range f.vendors {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, nil
}
func (f *fakeVendorRepo) List(orgID string, limit, offset int) ([]*entity.Vendor, error) {
	return nil, nil
}
func (f *fakeVendorRepo) Update(vendor *entity.Vendor) error { return nil }
func (f *fakeVendorRepo) Delete(orgID, id string) error      { return nil }

type fakeOrderTxRunner struct {
	orderRepo *fakeOrderRepo
	invRepo   *fakeInvQtyRepo
}

func (f *fakeOrderTxRunner) RunOrder(ctx context.Context, fn func(repository.OrderRepository, repository.InventoryRepository) error) error {
	return fn(f.orderRepo, f.invRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOrg = "org-1"

func buildOrderUseCase(t *testing.T) (*usecase.OrderUseCase, *fakeInvQtyRepo) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	invRepo := &fakeInvQtyRepo{qty: map[string]int{"item-1": 10}}
	vendorRepo := &fakeVendorRepo{vendors: map[string]*entity.Vendor{
		"v-1": {ID: "v-1", OrgID: testOrg, Name: "Distribuidora Central"},
	}}
	tx := &fakeOrderTxRunner{orderRepo: orderRepo, invRepo: invRepo}
	return usecase.NewOrderUseCase(tx, orderRepo, vendorRepo), invRepo
}

func createDraft(t *testing.T, uc *usecase.OrderUseCase) *dto.OrderResponse {
	t.Helper()
	order, err := uc.Create(context.Background(), testOrg, dto.CreateOrderRequest{
		VendorID: "v-1",
		Items: []dto.OrderItemInput{
			{InventoryItemID: "item-1", Name: "Aceite", Quantity: 6, UnitCost: decimal.NewFromFloat(4.25)},
			{Name: "Caja sin vincular", Quantity: 2, UnitCost: decimal.NewFromFloat(1.10)},
		},
	})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NaceEnDraftConTotal(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	order := createDraft(t, uc)

	assert.Equal(t, "draft", order.Status)
	assert.Nil(t, order.OrderedAt)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(27.70)),
		"total = 6*4.25 + 2*1.10, got %s", order.Total)
}

func TestCreateOrder_ProveedorInexistenteEs404(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	_, err := uc.Create(context.Background(), testOrg, dto.CreateOrderRequest{VendorID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitOrder_TransicionDesdeDraft(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	order := createDraft(t, uc)

	submitted, err := uc.Submit(context.Background(), testOrg, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", submitted.Status)
	assert.NotNil(t, submitted.OrderedAt)

	// Re-enviar no es válido.
	_, err = uc.Submit(context.Background(), testOrg, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

// Recibir incrementa solo las líneas vinculadas a un artículo; las sueltas
// (de un escaneo de factura) no tocan inventario.
func TestReceiveOrder_IncrementaSoloLineasVinculadas(t *testing.T) {
	uc, invRepo := buildOrderUseCase(t)
	order := createDraft(t, uc)

	_, err := uc.Submit(context.Background(), testOrg, order.ID)
	require.NoError(t, err)

	received, err := uc.Receive(context.Background(), testOrg, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", received.Status)
	assert.NotNil(t, received.ReceivedAt)

	assert.Equal(t, 16, invRepo.qty["item-1"], "10 previos + 6 recibidos")
	assert.Len(t, invRepo.qty, 1, "la línea sin vincular no creó inventario")
}

func TestReceiveOrder_RechazaSiNoEstaEnviada(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	order := createDraft(t, uc)

	// Aún en draft.
	_, err := uc.Receive(context.Background(), testOrg, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

func TestUpdateOrder_SoloEnDraft(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	order := createDraft(t, uc)

	_, err := uc.Submit(context.Background(), testOrg, order.ID)
	require.NoError(t, err)

	notes := "cambio tardío"
	_, err = uc.Update(context.Background(), testOrg, order.ID, dto.UpdateOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

func TestDeleteOrder_SoloDraftOCancelled(t *testing.T) {
	uc, _ := buildOrderUseCase(t)
	order := createDraft(t, uc)

	_, err := uc.Submit(context.Background(), testOrg, order.ID)
	require.NoError(t, err)

	err = uc.Delete(testOrg, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}
