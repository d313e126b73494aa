package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función con repos de órdenes e inventario atados a
// una transacción. Recibir una orden debe confirmar la transición de estado y
// los incrementos de cantidad como una sola unidad.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// OrderUseCase órdenes de compra a proveedores. ReceiveOrder es la vía de
// "ingreso por factura" que incrementa InventoryItem.Quantity.
type OrderUseCase struct {
	txRunner   OrderTxRunner
	repo       repository.OrderRepository
	vendorRepo repository.VendorRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner OrderTxRunner, repo repository.OrderRepository, vendorRepo repository.VendorRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repo: repo, vendorRepo: vendorRepo}
}

// Create crea una orden en draft con sus líneas.
func (uc *OrderUseCase) Create(ctx context.Context, orgID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.VendorID == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(orgID, in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	order, err := buildOrder(orgID, in.VendorID, in.Notes, in.Items)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, _ repository.InventoryRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(orgID, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con filtro opcional por status.
func (uc *OrderUseCase) List(orgID, status string, limit, offset int) ([]*dto.OrderResponse, error) {
	var st entity.OrderStatus
	if status != "" {
		parsed, err := entity.ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	orders, err := uc.repo.List(orgID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Update edición de una orden, solo permitida en draft.
func (uc *OrderUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft {
		return nil, domain.ErrOrderNotOpen
	}
	if in.VendorID != nil {
		vendor, err := uc.vendorRepo.GetByID(orgID, *in.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, domain.ErrNotFound
		}
		order.VendorID = *in.VendorID
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.Items != nil {
		items, err := buildOrderItems(order.ID, *in.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Submit transición draft -> submitted.
func (uc *OrderUseCase) Submit(ctx context.Context, orgID, id string) (*dto.OrderResponse, error) {
	var submitted *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, _ repository.InventoryRepository) error {
		order, err := orderRepo.GetForUpdate(orgID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusDraft {
			return domain.ErrOrderNotOpen
		}
		now := time.Now()
		order.Status = entity.OrderStatusSubmitted
		order.OrderedAt = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		submitted = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(submitted), nil
}

// Receive marca la orden como recibida e incrementa la cantidad de cada artículo
// vinculado, todo en una transacción con la fila de la orden bloqueada. Las
// líneas sin artículo vinculado (de un escaneo de factura) no tocan inventario.
func (uc *OrderUseCase) Receive(ctx context.Context, orgID, id string) (*dto.OrderResponse, error) {
	var received *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, invRepo repository.InventoryRepository) error {
		order, err := orderRepo.GetForUpdate(orgID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusSubmitted {
			return domain.ErrOrderNotOpen
		}
		for _, line := range order.Items {
			if line.InventoryItemID == "" {
				continue
			}
			if err := invRepo.IncrementQuantity(line.InventoryItemID, line.Quantity); err != nil {
				return err
			}
		}
		now := time.Now()
		order.Status = entity.OrderStatusReceived
		order.ReceivedAt = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(received), nil
}

// Delete borra una orden (solo draft o cancelled).
func (uc *OrderUseCase) Delete(orgID, id string) error {
	order, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft && order.Status != entity.OrderStatusCancelled {
		return domain.ErrOrderNotOpen
	}
	return uc.repo.Delete(orgID, id)
}

func buildOrder(orgID, vendorID, notes string, lines []dto.OrderItemInput) (*entity.Order, error) {
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		VendorID:  vendorID,
		Status:    entity.OrderStatusDraft,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items, err := buildOrderItems(order.ID, lines)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func buildOrderItems(orderID string, lines []dto.OrderItemInput) ([]*entity.OrderItem, error) {
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		if l.Name == "" || l.Quantity <= 0 || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         orderID,
			InventoryItemID: l.InventoryItemID,
			Name:            l.Name,
			Quantity:        l.Quantity,
			UnitCost:        l.UnitCost,
		})
	}
	return items, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         o.ID,
		VendorID:   o.VendorID,
		Status:     string(o.Status),
		Notes:      o.Notes,
		OrderedAt:  o.OrderedAt,
		ReceivedAt: o.ReceivedAt,
		Total:      o.Total(),
		Items:      make([]*dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, &dto.OrderItemResponse{
			ID:              it.ID,
			InventoryItemID: it.InventoryItemID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			UnitCost:        it.UnitCost,
		})
	}
	return resp
}
