package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/invorya/bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GoodsUC   *usecase.GoodsUseCase
	HistoryUC *usecase.HistoryUseCase
	ReportUC  *usecase.ReportUseCase
}

// Router registra las rutas de la API. Las rutas con segmento fijo (search,
// low_stock, report, by/_id, clear) van antes que las parametrizadas para que
// el matching no las capture como :id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// CORS abierto en toda la API, igual que el backend legado. Vive junto a
	// las rutas que protege, no en main: es parte del contrato HTTP.
	api.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Goods
	goods := api.Group("/goods")
	goodsHandler := NewGoodsHandler(deps.GoodsUC)
	goods.Get("/", goodsHandler.List)
	goods.Post("/", goodsHandler.Create)
	goods.Get("/search", goodsHandler.Search)
	goods.Get("/low_stock", goodsHandler.LowStock)
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		goods.Get("/report", reportHandler.Generate)
	}
	goods.Get("/by/_id/:id", goodsHandler.GetByAlias)
	goods.Put("/by/_id/:id", goodsHandler.Update)
	goods.Delete("/by/_id/:id", goodsHandler.Delete)
	goods.Put("/:id", goodsHandler.Update)
	goods.Delete("/:id", goodsHandler.Delete)
	goods.Post("/:id/stock_in", goodsHandler.StockIn)
	goods.Post("/:id/stock_out", goodsHandler.StockOut)
	goods.Get("/:id/location", goodsHandler.GetLocation)
	goods.Get("/:id/price", goodsHandler.GetPrice)

	// Historial de operaciones
	history := api.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	history.Get("/", historyHandler.List)
	history.Get("/search", historyHandler.Search)
	history.Delete("/clear", historyHandler.Clear)
	history.Delete("/by/_id/:id", historyHandler.Delete)
	history.Delete("/:id", historyHandler.Delete)
}
