package prep

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// TxRunner ejecuta una función con un PrepRepository atado a una transacción.
// El incremento de nivel y su evento en la bitácora deben confirmar juntos.
type TxRunner interface {
	RunPrep(ctx context.Context, fn func(prepRepo repository.PrepRepository) error) error
}

// PrepUseCase rastreador de niveles de preparación (restaurante): nivel actual
// contra par objetivo, con bitácora append-only de preparaciones completadas.
// Contraste con el conteo cíclico: aquí cada evento se acumula, nunca se sobrescribe.
type PrepUseCase struct {
	txRunner TxRunner
	repo     repository.PrepRepository
}

// NewPrepUseCase construye el caso de uso.
func NewPrepUseCase(txRunner TxRunner, repo repository.PrepRepository) *PrepUseCase {
	return &PrepUseCase{txRunner: txRunner, repo: repo}
}

// CreateItem crea un ítem de preparación con nivel actual en cero.
func (uc *PrepUseCase) CreateItem(orgID string, in dto.CreatePrepItemRequest) (*dto.PrepItemResponse, error) {
	if in.Name == "" || in.ParLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	unit, err := entity.ParsePrepUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.PrepItem{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      in.Name,
		Unit:      unit,
		ParLevel:  in.ParLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateItem(item); err != nil {
		return nil, err
	}
	return toPrepItemResponse(item), nil
}

// GetItem obtiene un ítem de preparación.
func (uc *PrepUseCase) GetItem(orgID, id string) (*dto.PrepItemResponse, error) {
	item, err := uc.repo.GetItemByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toPrepItemResponse(item), nil
}

// ListItems lista los ítems de preparación del tenant.
func (uc *PrepUseCase) ListItems(orgID string) ([]*dto.PrepItemResponse, error) {
	items, err := uc.repo.ListItems(orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PrepItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toPrepItemResponse(it))
	}
	return out, nil
}

// UpdateItem edición de name/unit/parLevel. CurrentLevel no se edita aquí: solo
// se mueve vía RecordPrep y ResetLevels para que la bitácora lo explique completo.
func (uc *PrepUseCase) UpdateItem(orgID, id string, in dto.UpdatePrepItemRequest) (*dto.PrepItemResponse, error) {
	item, err := uc.repo.GetItemByID(orgID, id)
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
	if in.Unit != nil {
		unit, err := entity.ParsePrepUnit(*in.Unit)
		if err != nil {
			return nil, err
		}
		item.Unit = unit
	}
	if in.ParLevel != nil {
		if *in.ParLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.ParLevel = *in.ParLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.UpdateItem(item); err != nil {
		return nil, err
	}
	return toPrepItemResponse(item), nil
}

// DeleteItem borra el ítem y su bitácora (cascade).
func (uc *PrepUseCase) DeleteItem(orgID, id string) error {
	item, err := uc.repo.GetItemByID(orgID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteItem(orgID, id)
}

// RecordPrep registra una preparación completada: inserta el evento en la bitácora
// e incrementa current_level, ambos en la misma transacción con la fila bloqueada.
func (uc *PrepUseCase) RecordPrep(ctx context.Context, orgID, userID, itemID string, in dto.RecordPrepRequest) (*dto.PrepItemResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.PrepItem
	err := uc.txRunner.RunPrep(ctx, func(prepRepo repository.PrepRepository) error {
		item, err := prepRepo.GetItemForUpdate(orgID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		log := &entity.PrepLog{
			ID:         uuid.New().String(),
			PrepItemID: item.ID,
			Quantity:   in.Quantity,
			Notes:      in.Notes,
			UserID:     userID,
			PreppedAt:  time.Now(),
		}
		if err := prepRepo.CreateLog(log); err != nil {
			return err
		}
		item.CurrentLevel += in.Quantity
		if err := prepRepo.UpdateLevel(item.ID, item.CurrentLevel); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPrepItemResponse(updated), nil
}

// ListLogs bitácora de un ítem, más reciente primero.
func (uc *PrepUseCase) ListLogs(orgID, itemID string, limit int) ([]*dto.PrepLogResponse, error) {
	item, err := uc.repo.GetItemByID(orgID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	logs, err := uc.repo.ListLogs(itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PrepLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, &dto.PrepLogResponse{
			ID:         l.ID,
			PrepItemID: l.PrepItemID,
			Quantity:   l.Quantity,
			Notes:      l.Notes,
			UserID:     l.UserID,
			PreppedAt:  l.PreppedAt,
		})
	}
	return out, nil
}

// ResetLevels reset de inicio de día: lleva todos los niveles a cero dejando el
// evento negativo correspondiente en la bitácora de cada ítem.
func (uc *PrepUseCase) ResetLevels(ctx context.Context, orgID, userID string) error {
	return uc.txRunner.RunPrep(ctx, func(prepRepo repository.PrepRepository) error {
		items, err := prepRepo.ListItems(orgID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			if item.CurrentLevel == 0 {
				continue
			}
			log := &entity.PrepLog{
				ID:         uuid.New().String(),
				PrepItemID: item.ID,
				Quantity:   -item.CurrentLevel,
				Notes:      "reset de inicio de día",
				UserID:     userID,
				PreppedAt:  now,
			}
			if err := prepRepo.CreateLog(log); err != nil {
				return err
			}
			if err := prepRepo.UpdateLevel(item.ID, 0); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrepSheet ítems por debajo del par con el faltante derivado.
func (uc *PrepUseCase) PrepSheet(orgID string) ([]*dto.PrepItemResponse, error) {
	items, err := uc.repo.ListItems(orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PrepItemResponse, 0, len(items))
	for _, it := range items {
		if it.Needed() == 0 {
			continue
		}
		out = append(out, toPrepItemResponse(it))
	}
	return out, nil
}

func toPrepItemResponse(p *entity.PrepItem) *dto.PrepItemResponse {
	return &dto.PrepItemResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         string(p.Unit),
		CurrentLevel: p.CurrentLevel,
		ParLevel:     p.ParLevel,
		Needed:       p.Needed(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
