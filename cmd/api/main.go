package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invorya/bodega-api/internal/application/usecase"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/internal/infrastructure/jsonfile"
	"github.com/invorya/bodega-api/internal/infrastructure/pdf"
	"github.com/invorya/bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/bodega-api/internal/interfaces/http"
	"github.com/invorya/bodega-api/pkg/config"
	"github.com/invorya/bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Ambos backends implementan los mismos puertos de repositorio;
	// el resto de la aplicación no distingue el medio de persistencia.
	var (
		goodsRepo   repository.GoodsRepository
		historyRepo repository.HistoryRepository
		txRunner    usecase.TxRunner
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de base de datos")
		}
		goodsRepo = postgres.NewGoodsRepository(pool)
		historyRepo = postgres.NewHistoryRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default:
		store, err := jsonfile.NewStore(cfg.Store.GoodsFile, cfg.Store.HistoryFile)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén de archivos")
		}
		if !store.Exists() {
			log.Info().Str("goods_file", cfg.Store.GoodsFile).Msg("documento nuevo, almacén vacío")
		}
		goodsRepo = jsonfile.NewGoodsRepository(store)
		historyRepo = jsonfile.NewHistoryRepository(store)
		txRunner = jsonfile.NewTxRunner(store)
	}

	goodsUC := usecase.NewGoodsUseCase(goodsRepo, txRunner)
	historyUC := usecase.NewHistoryUseCase(historyRepo)
	reportUC := usecase.NewReportUseCase(goodsRepo, pdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": cfg.App.Name, "docs": "/docs"})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		GoodsUC:   goodsUC,
		HistoryUC: historyUC,
		ReportUC:  reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
