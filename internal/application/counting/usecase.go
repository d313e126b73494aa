package counting

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// CycleCountUseCase ciclo de vida completo del conteo cíclico: foto inicial,
// registro de conteos físicos y cierre con reconciliación opcional.
//
// Registro y cierre corren dentro de una transacción que primero bloquea la fila
// del conteo (SELECT FOR UPDATE) y reverifica el status bajo el lock, de modo que
// un registro concurrente con el cierre se serializa: el que pierde la carrera
// observa el conteo ya cerrado y falla con ErrCountNotOpen.
type CycleCountUseCase struct {
	txRunner  TxRunner
	countRepo repository.CycleCountRepository
	invRepo   repository.InventoryRepository
}

// NewCycleCountUseCase construye el caso de uso.
func NewCycleCountUseCase(
	txRunner TxRunner,
	countRepo repository.CycleCountRepository,
	invRepo repository.InventoryRepository,
) *CycleCountUseCase {
	return &CycleCountUseCase{txRunner: txRunner, countRepo: countRepo, invRepo: invRepo}
}

// StartCycleCount crea un conteo in_progress con una fila por cada artículo en
// status pending, capturando expected_qty = quantity actual. Todo en una tx: la
// foto es una lectura consistente del inventario en un instante. Cero artículos
// pending no es error: el conteo nace vacío.
func (uc *CycleCountUseCase) StartCycleCount(ctx context.Context, orgID string, in dto.StartCycleCountRequest) (*dto.CycleCountResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	count := &entity.CycleCount{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      in.Name,
		Status:    entity.CountStatusInProgress,
		Notes:     in.Notes,
		StartedAt: now,
	}

	var total int
	err := uc.txRunner.Run(ctx, func(countRepo repository.CycleCountRepository, invRepo repository.InventoryRepository) error {
		pending, err := invRepo.ListByStatus(orgID, entity.ItemStatusPending)
		if err != nil {
			return err
		}
		if err := countRepo.Create(count); err != nil {
			return err
		}
		rows := make([]*entity.CycleCountItem, 0, len(pending))
		for _, item := range pending {
			rows = append(rows, &entity.CycleCountItem{
				ID:              uuid.New().String(),
				CycleCountID:    count.ID,
				InventoryItemID: item.ID,
				ExpectedQty:     item.Quantity,
			})
		}
		total = len(rows)
		if len(rows) == 0 {
			return nil
		}
		return countRepo.BulkInsertItems(rows)
	})
	if err != nil {
		return nil, err
	}

	resp := toCountResponse(count, entity.CountStats{TotalItems: total})
	return resp, nil
}

// RecordCount registra el conteo físico de un artículo dentro de un conteo abierto.
// Semántica de sobrescritura: una segunda llamada para el mismo artículo reemplaza
// la anterior (el operador corrigiendo un error de conteo); no se guarda historial.
// Nunca toca InventoryItem.Quantity.
func (uc *CycleCountUseCase) RecordCount(ctx context.Context, orgID, countID, inventoryItemID string, in dto.RecordCountRequest) (*dto.CycleCountItemDTO, error) {
	if in.CountedQty == nil || *in.CountedQty < 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.CycleCountItem
	err := uc.txRunner.Run(ctx, func(countRepo repository.CycleCountRepository, _ repository.InventoryRepository) error {
		count, err := countRepo.GetForUpdate(orgID, countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.Status != entity.CountStatusInProgress {
			return domain.ErrCountNotOpen
		}
		row, err := countRepo.GetItem(countID, inventoryItemID)
		if err != nil {
			return err
		}
		if row == nil {
			// El artículo nunca formó parte de la foto inicial de este conteo.
			return domain.ErrNotFound
		}

		// La varianza se computa contra el expected_qty congelado en la fila,
		// nunca contra el inventario vivo.
		counted := *in.CountedQty
		variance := counted - row.ExpectedQty
		now := time.Now()
		row.CountedQty = &counted
		row.Variance = &variance
		row.Notes = in.Notes
		row.CountedAt = &now
		if err := countRepo.UpdateItemCount(row); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCountItemDTO(updated), nil
}

// CompleteCycleCount cierra un conteo (transición terminal de un solo disparo).
// Con applyChanges=true escribe counted_qty sobre InventoryItem.Quantity para
// cada fila contada; las filas sin contar conservan su cantidad previa intacta.
// Con applyChanges=false el conteo se cierra solo como registro. Todas las
// escrituras comparten una transacción: o se aplican todas o ninguna.
func (uc *CycleCountUseCase) CompleteCycleCount(ctx context.Context, orgID, countID string, applyChanges bool) (*dto.CycleCountResponse, error) {
	var (
		closed *entity.CycleCount
		stats  entity.CountStats
	)
	err := uc.txRunner.Run(ctx, func(countRepo repository.CycleCountRepository, invRepo repository.InventoryRepository) error {
		count, err := countRepo.GetForUpdate(orgID, countID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.Status != entity.CountStatusInProgress {
			return domain.ErrCountNotOpen
		}

		items, err := countRepo.ListItems(countID)
		if err != nil {
			return err
		}
		if applyChanges {
			for _, row := range items {
				if !row.Counted() {
					continue
				}
				if err := invRepo.UpdateQuantity(row.InventoryItemID, *row.CountedQty); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		count.Status = entity.CountStatusCompleted
		count.CompletedAt = &now
		if err := countRepo.Update(count); err != nil {
			return err
		}
		closed = count
		stats = entity.DeriveCountStats(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCountResponse(closed, stats), nil
}

// GetCycleCount devuelve el conteo con sus filas (sin contar primero, luego por
// nombre de artículo con colación) y estadísticas recalculadas.
func (uc *CycleCountUseCase) GetCycleCount(ctx context.Context, orgID, countID string) (*dto.CycleCountResponse, error) {
	count, err := uc.countRepo.GetByID(orgID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.countRepo.ListItems(countID)
	if err != nil {
		return nil, err
	}
	sortCountItems(items)

	resp := toCountResponse(count, entity.DeriveCountStats(items))
	resp.Items = make([]*dto.CycleCountItemDTO, 0, len(items))
	for _, row := range items {
		resp.Items = append(resp.Items, toCountItemDTO(row))
	}
	return resp, nil
}

// ListCycleCounts lista los conteos del tenant con estadísticas derivadas.
func (uc *CycleCountUseCase) ListCycleCounts(ctx context.Context, orgID string, limit, offset int) ([]*dto.CycleCountResponse, error) {
	summaries, err := uc.countRepo.ListWithStats(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CycleCountResponse, 0, len(summaries))
	for _, s := range summaries {
		c := s.Count
		out = append(out, toCountResponse(&c, s.Stats))
	}
	return out, nil
}

// UpdateCycleCount edición directa de name/status/notes (PATCH).
// El status se valida contra el enum cerrado; un valor desconocido es ErrInvalidInput.
// completed y cancelled son terminales: un conteo cerrado no se reabre por PATCH.
func (uc *CycleCountUseCase) UpdateCycleCount(ctx context.Context, orgID, countID string, in dto.UpdateCycleCountRequest) (*dto.CycleCountResponse, error) {
	count, err := uc.countRepo.GetByID(orgID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		count.Name = *in.Name
	}
	if in.Notes != nil {
		count.Notes = *in.Notes
	}
	if in.Status != nil {
		status, err := entity.ParseCountStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if status != count.Status {
			if count.Status != entity.CountStatusInProgress {
				return nil, domain.ErrCountNotOpen
			}
			// Desde in_progress solo quedan los dos estados terminales.
			now := time.Now()
			count.Status = status
			count.CompletedAt = &now
		}
	}
	if err := uc.countRepo.Update(count); err != nil {
		return nil, err
	}
	items, err := uc.countRepo.ListItems(countID)
	if err != nil {
		return nil, err
	}
	return toCountResponse(count, entity.DeriveCountStats(items)), nil
}

// DeleteCycleCount borra el conteo y sus filas (cascade).
func (uc *CycleCountUseCase) DeleteCycleCount(ctx context.Context, orgID, countID string) error {
	count, err := uc.countRepo.GetByID(orgID, countID)
	if err != nil {
		return err
	}
	if count == nil {
		return domain.ErrNotFound
	}
	return uc.countRepo.Delete(orgID, countID)
}

// itemCollator ordena nombres de artículo sin distinguir mayúsculas ni acentos.
var itemCollator = collate.New(language.English, collate.Loose)

// sortCountItems: sin contar primero (para que el operador vea lo que falta),
// luego por nombre de artículo con colación.
func sortCountItems(items []*entity.CycleCountItem) {
	sort.SliceStable(items, func(a, b int) bool {
		ca, cb := items[a].Counted(), items[b].Counted()
		if ca != cb {
			return !ca
		}
		return itemCollator.CompareString(items[a].ItemName, items[b].ItemName) < 0
	})
}

func toCountResponse(c *entity.CycleCount, stats entity.CountStats) *dto.CycleCountResponse {
	return &dto.CycleCountResponse{
		ID:          c.ID,
		Name:        c.Name,
		Status:      string(c.Status),
		Notes:       c.Notes,
		StartedAt:   c.StartedAt,
		CompletedAt: c.CompletedAt,
		Stats: dto.CountStatsDTO{
			TotalItems:        stats.TotalItems,
			CountedItems:      stats.CountedItems,
			ItemsWithVariance: stats.ItemsWithVariance,
			Progress:          stats.Progress,
		},
	}
}

func toCountItemDTO(row *entity.CycleCountItem) *dto.CycleCountItemDTO {
	return &dto.CycleCountItemDTO{
		ID:              row.ID,
		InventoryItemID: row.InventoryItemID,
		ExpectedQty:     row.ExpectedQty,
		CountedQty:      row.CountedQty,
		Variance:        row.Variance,
		Notes:           row.Notes,
		CountedAt:       row.CountedAt,
		ItemName:        row.ItemName,
		ItemImageURL:    row.ItemImageURL,
		ItemBin:         row.ItemBin,
		ItemRack:        row.ItemRack,
	}
}
