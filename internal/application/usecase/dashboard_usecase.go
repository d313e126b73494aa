package usecase

import (
	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// DashboardUseCase agregados para la pantalla principal de la app.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetDashboard recalcula los agregados desde las filas autoritativas.
func (uc *DashboardUseCase) GetDashboard(orgID string) (*dto.DashboardResponse, error) {
	counts, err := uc.repo.Dashboard(orgID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		PendingItems:      counts.PendingItems,
		ItemsBelowPar:     counts.ItemsBelowPar,
		OpenCycleCounts:   counts.OpenCycleCounts,
		DraftOrders:       counts.DraftOrders,
		LastCountAccuracy: counts.LastCountAccuracy,
	}, nil
}
