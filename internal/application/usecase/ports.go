package usecase

import (
	"context"
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios atados a una misma unidad
// atómica. El backend de tablas la implementa con una transacción SQL; el de
// archivo ejecuta fn directamente (su durabilidad es por escritura).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		goodsRepo repository.GoodsRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}

// ReportGenerator genera el PDF del reporte de inventario (puerto de salida;
// la implementación Maroto vive en infrastructure/pdf).
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, goods, lowStock []*entity.Goods, generatedAt time.Time) ([]byte, error)
}
