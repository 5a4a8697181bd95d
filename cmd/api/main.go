package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/warehouse-sync/internal/application/movement"
	"github.com/tu-usuario/warehouse-sync/internal/application/stock"
	infrakafka "github.com/tu-usuario/warehouse-sync/internal/infrastructure/kafka"
	"github.com/tu-usuario/warehouse-sync/internal/infrastructure/postgres"
	"github.com/tu-usuario/warehouse-sync/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/warehouse-sync/internal/interfaces/http"
	"github.com/tu-usuario/warehouse-sync/pkg/config"
	"github.com/tu-usuario/warehouse-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("mode", cfg.App.Mode).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cliente Redis con ciclo de vida explícito: se crea aquí y se cierra en el shutdown.
	redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer func() { _ = redisClient.Close() }()
	cacheStore := rediscache.New(redisClient, log)

	txRunner := postgres.NewTxRunner(pool)
	processor := movement.NewProcessor(txRunner, cacheStore, log)

	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	movementQuery := movement.NewQueryService(movementRepo, cacheStore, cfg.Redis.CacheTTL)
	stockQuery := stock.NewQueryService(stockRepo, cacheStore, cfg.Redis.CacheTTL)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Processor:      processor,
		MovementQuery:  movementQuery,
		StockQuery:     stockQuery,
		DB:             pool,
		ServiceVersion: cfg.App.Version,
	})

	// Consumidor de Kafka solo en modo kafka; en webhook_only los eventos
	// entran únicamente por POST /api/v1/kafka/webhook.
	var consumer *infrakafka.Consumer
	consumerDone := make(chan struct{})
	if cfg.App.Mode == config.ModeKafka {
		consumer = infrakafka.NewConsumer(infrakafka.NewReader(cfg.Kafka), processor, log)
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil {
				log.Error().Err(err).Msg("consumidor de Kafka finalizado con error")
			}
		}()
	} else {
		close(consumerDone)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del consumidor de Kafka")
		}
	}
	<-consumerDone

	log.Info().Msg("aplicación detenida")
}
