package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Processor      EventProcessor
	MovementQuery  MovementQueries
	StockQuery     StockQueries
	DB             Pinger
	ServiceVersion string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Ingesta de eventos (imitación del tópico de Kafka por HTTP) y consulta
	// por clave de correlación externa
	kafkaGroup := api.Group("/kafka")
	webhookHandler := NewWebhookHandler(deps.Processor)
	movementHandler := NewMovementHandler(deps.MovementQuery)
	kafkaGroup.Post("/webhook", webhookHandler.Handle)
	kafkaGroup.Get("/processed/:movement_id", movementHandler.GetProcessed)

	// Movimientos (solo lectura)
	movements := api.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Get("/:movement_id", movementHandler.GetByID)
	movements.Get("/:movement_id/duration", movementHandler.GetDuration)

	// Existencias por almacén (solo lectura)
	warehouse := api.Group("/warehouse")
	stockHandler := NewStockHandler(deps.StockQuery)
	warehouse.Get("/:warehouse_id/products/:product_id", stockHandler.GetProductStock)
	warehouse.Get("/:warehouse_id/inventory", stockHandler.GetInventory)

	// Operación
	admin := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.DB, deps.ServiceVersion)
	admin.Get("/liveness", adminHandler.Liveness)
	admin.Get("/readiness", adminHandler.Readiness)
	admin.Get("/service_version", adminHandler.ServiceVersion)
}
