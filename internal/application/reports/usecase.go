package reports

import (
	"context"

	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/prep"
)

// ReportPDFGenerator puerto hacia la infraestructura de PDF (Maroto).
type ReportPDFGenerator interface {
	GeneratePrepSheetPDF(ctx context.Context, items []*dto.PrepItemResponse) ([]byte, error)
	GenerateCountReportPDF(ctx context.Context, count *dto.CycleCountResponse) ([]byte, error)
}

// ReportUseCase arma los datos de los reportes imprimibles y delega el layout
// al generador de PDF.
type ReportUseCase struct {
	prepUC  *prep.PrepUseCase
	countUC *counting.CycleCountUseCase
	gen     ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(prepUC *prep.PrepUseCase, countUC *counting.CycleCountUseCase, gen ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{prepUC: prepUC, countUC: countUC, gen: gen}
}

// PrepSheetPDF hoja de preparación imprimible: ítems por debajo del par.
func (uc *ReportUseCase) PrepSheetPDF(ctx context.Context, orgID string) ([]byte, error) {
	items, err := uc.prepUC.PrepSheet(orgID)
	if err != nil {
		return nil, err
	}
	return uc.gen.GeneratePrepSheetPDF(ctx, items)
}

// CycleCountReportPDF reporte de varianzas de un conteo, con sus estadísticas.
func (uc *ReportUseCase) CycleCountReportPDF(ctx context.Context, orgID, countID string) ([]byte, error) {
	count, err := uc.countUC.GetCycleCount(ctx, orgID, countID)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateCountReportPDF(ctx, count)
}
