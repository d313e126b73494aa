package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// InventoryUseCase CRUD de artículos de inventario. La edición directa de
// Quantity es uno de los tres escritores legítimos (junto con la recepción de
// órdenes y el cierre de conteos cíclicos).
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Create crea un artículo. Status vacío = pending.
func (uc *InventoryUseCase) Create(orgID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ParLevel != nil && *in.ParLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := entity.ItemStatusPending
	if in.Status != "" {
		var err error
		status, err = entity.ParseItemStatus(in.Status)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Bin:         in.Bin,
		Rack:        in.Rack,
		Platform:    in.Platform,
		Status:      status,
		Quantity:    in.Quantity,
		ParLevel:    in.ParLevel,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo dentro del scope del tenant.
func (uc *InventoryUseCase) GetByID(orgID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista artículos con filtro opcional por status y paginación.
func (uc *InventoryUseCase) List(orgID, status string, limit, offset int) (*dto.ItemListResponse, error) {
	var st entity.ItemStatus
	if status != "" {
		parsed, err := entity.ParseItemStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	items, err := uc.repo.List(orgID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemListResponse{Items: make([]*dto.ItemResponse, 0, len(items)), Limit: limit, Offset: offset}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	return resp, nil
}

// Update edición parcial. Cambiar Quantity aquí es la "edición directa" del dueño.
func (uc *InventoryUseCase) Update(orgID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Bin != nil {
		item.Bin = *in.Bin
	}
	if in.Rack != nil {
		item.Rack = *in.Rack
	}
	if in.Platform != nil {
		item.Platform = *in.Platform
	}
	if in.Status != nil {
		status, err := entity.ParseItemStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		item.Status = status
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.ParLevel != nil {
		if *in.ParLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.ParLevel = in.ParLevel
	}
	if in.Cost != nil {
		item.Cost = in.Cost
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borra un artículo. Las filas de conteos pasados no caen: persisten
// de forma independiente como registro histórico.
func (uc *InventoryUseCase) Delete(orgID, id string) error {
	item, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(orgID, id)
}

func toItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		ImageURL:    i.ImageURL,
		Bin:         i.Bin,
		Rack:        i.Rack,
		Platform:    i.Platform,
		Status:      string(i.Status),
		Quantity:    i.Quantity,
		ParLevel:    i.ParLevel,
		Cost:        i.Cost,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
