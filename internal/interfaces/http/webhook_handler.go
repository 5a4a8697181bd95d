package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-sync/internal/application/dto"
	"github.com/tu-usuario/warehouse-sync/internal/application/ingest"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/event"
)

// EventProcessor es lo que el webhook necesita del motor de conciliación.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, evt event.MovementEvent) (*entity.Movement, error)
}

// WebhookHandler recibe sobres de movimiento por HTTP (imitación del tópico de
// Kafka para productores que no publican directo).
type WebhookHandler struct {
	processor EventProcessor
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(processor EventProcessor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// Handle procesa un sobre de movimiento. Mismo camino que el consumidor de
// Kafka: normalización, validación y unidad de trabajo transaccional.
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	var env ingest.Envelope
	if err := c.BodyParser(&env); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}

	evt, err := ingest.Normalize(env)
	if err != nil {
		return errorResponse(c, err)
	}

	movement, err := h.processor.ProcessEvent(c.Context(), evt)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.WebhookResponse{
		Status:     "processed",
		MessageID:  env.ID,
		MovementID: evt.MovementID,
		Details: map[string]any{
			"event_type":   evt.EventType,
			"warehouse_id": evt.WarehouseID,
			"product_id":   evt.ProductID,
			"status":       movement.Status,
			"processed_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
