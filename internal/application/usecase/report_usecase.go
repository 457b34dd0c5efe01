package usecase

import (
	"context"
	"time"

	"github.com/invorya/bodega-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del inventario: la lista completa de
// mercancías más la sección de stock bajo.
type ReportUseCase struct {
	repo repository.GoodsRepository
	gen  ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.GoodsRepository, gen ReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, gen: gen}
}

// Generate arma el reporte con el estado actual del almacén y devuelve los bytes del PDF.
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	goods, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStock()
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateInventoryReport(ctx, goods, lowStock, time.Now())
}
